package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/closetly/auth"
	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/utils"
)

type userView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func viewUser(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

func sessionResponse(message string, res *auth.Result) map[string]interface{} {
	return map[string]interface{}{
		"success":       true,
		"message":       message,
		"user":          viewUser(res.User),
		"session_token": res.SessionToken,
		"expires_at":    res.ExpiresAt,
	}
}

// SignupHandler registers a user and opens a session
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Signup API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	res, err := h.Auth.Signup(r.Context(), req)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User created: %s", res.User.ID))
	utils.RespondJSON(w, http.StatusCreated, sessionResponse("Account created successfully", res))
}

// LoginHandler checks credentials and opens a new session
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User logged in: %s", res.User.ID))
	utils.RespondJSON(w, http.StatusOK, sessionResponse("Login successful", res))
}

// LogoutHandler deletes the session named by the bearer token
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Logout API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	if err := h.Auth.Logout(r.Context(), utils.BearerToken(r)); err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Session deleted")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// CheckHandler returns the user behind a valid session
func (h *Handler) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}
	user, _ := GetUserFromContext(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"authenticated": true,
		"user":          viewUser(user),
	})
}
