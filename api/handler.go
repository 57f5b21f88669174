package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/closetly/auth"
	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
	"github.com/raushankrgupta/closetly/pricing/learned"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/undertone"
	"github.com/raushankrgupta/closetly/utils"
)

const (
	EngineSampling = "sampling"
	EngineModel    = "model"
)

// PhotoArchiver stores an analysed photo and returns a link to it
type PhotoArchiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Handler carries the dependencies shared by every endpoint
type Handler struct {
	Estimator *pricing.Estimator
	Model     *learned.Model
	Engine    string

	Auth     *auth.Service
	Store    store.Store
	Analyzer *undertone.Analyzer
	Limiter  utils.Limiter
	Archiver PhotoArchiver

	// TrustProxy keys rate limits on X-Forwarded-For
	TrustProxy bool

	FrontendDir string
}

// predictor returns the configured price engine
func (h *Handler) predictor() (pricing.Predictor, error) {
	if h.Engine == EngineModel {
		if h.Model == nil {
			return nil, utils.UnavailableError("Price model is not loaded")
		}
		return h.Model, nil
	}
	return h.Estimator, nil
}

// Routes registers every endpoint and wraps the mux with CORS and latency logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.HealthHandler)
	mux.HandleFunc("/api/info", h.InfoHandler)

	mux.HandleFunc("/predict", h.RateLimit(h.PredictHandler))
	mux.HandleFunc("/compare", h.RateLimit(h.CompareHandler))
	mux.HandleFunc("/batch_predict", h.RateLimit(h.BatchPredictHandler))
	mux.HandleFunc("/available_options", h.AvailableOptionsHandler)

	mux.HandleFunc("/api/auth/signup", h.SignupHandler)
	mux.HandleFunc("/api/auth/login", h.LoginHandler)
	mux.HandleFunc("/api/auth/logout", h.LogoutHandler)
	mux.HandleFunc("/api/auth/check", h.RequireAuth(h.CheckHandler))

	mux.HandleFunc("/api/profile/save", h.RequireAuth(h.SaveProfileHandler))
	mux.HandleFunc("/api/profile/get", h.RequireAuth(h.GetProfileHandler))

	mux.HandleFunc("/api/analyze/undertone", h.RateLimit(h.OptionalAuth(h.UndertoneHandler)))
	mux.HandleFunc("/api/recommendations/get", h.RequireAuth(h.RecommendationsHandler))

	mux.HandleFunc("/", h.HomeHandler)

	return utils.CORSMiddleware(utils.LatencyMiddleware(mux))
}

type contextKey string

const userContextKey contextKey = "user"

// GetUserFromContext returns the user attached by RequireAuth or OptionalAuth
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok && u != nil
}

// RequireAuth rejects requests without a valid bearer session
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.Auth.Verify(r.Context(), utils.BearerToken(r))
		if err != nil {
			utils.RespondError(w, nil, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// OptionalAuth attaches the user when a valid bearer session is present
func (h *Handler) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := utils.BearerToken(r); token != "" {
			if user, err := h.Auth.Verify(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
			}
		}
		next(w, r)
	}
}

// RateLimit enforces the per-client request quota. Limiter errors fail open.
func (h *Handler) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Limiter != nil && r.Method != http.MethodOptions {
			ok, err := h.Limiter.Allow(r.Context(), utils.ClientIP(r, h.TrustProxy))
			if err != nil {
				fmt.Println("[Rate Limit] limiter unavailable:", err)
			}
			if err == nil && !ok {
				utils.RespondError(w, nil, utils.RateLimitError())
				return
			}
		}
		next(w, r)
	}
}

// allowMethod writes a 405 and returns false when r.Method is not method
func allowMethod(w http.ResponseWriter, r *http.Request, logger *strings.Builder, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	utils.RespondError(w, logger, utils.MethodNotAllowedError())
	return false
}
