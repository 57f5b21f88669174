package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/raushankrgupta/closetly/pricing"
	"github.com/raushankrgupta/closetly/utils"
)

const fallbackHomePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Closetly - Fashion Recommendations</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 16px; color: #333; }
    h1 { color: #c2185b; }
    code { background: #f4f4f4; padding: 2px 6px; border-radius: 4px; }
  </style>
</head>
<body>
  <h1>Closetly</h1>
  <p>Fashion price estimates, retailer comparisons and colour analysis for India.</p>
  <ul>
    <li><code>GET /health</code></li>
    <li><code>GET /api/info</code></li>
    <li><code>POST /predict</code></li>
    <li><code>POST /compare</code></li>
    <li><code>POST /batch_predict</code></li>
    <li><code>GET /available_options</code></li>
  </ul>
</body>
</html>
`

// HealthHandler reports liveness and whether the learned model is loaded
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}
	resp := map[string]interface{}{
		"status":       "healthy",
		"message":      "Closetly API is running",
		"engine":       h.engine(),
		"model_loaded": h.Model != nil,
		"region":       "India",
		"timestamp":    time.Now().Format(time.RFC3339),
	}
	if h.Model != nil {
		resp["model"] = h.Model.Name
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

// InfoHandler describes the API
func (h *Handler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"app":         "Closetly Fashion API",
		"description": "Fashion price estimates and style recommendations for India",
		"endpoints": map[string]string{
			"GET /":                        "Homepage",
			"GET /health":                  "Health check",
			"GET /api/info":                "API information",
			"POST /predict":                "Predict single item price",
			"POST /compare":                "Compare prices across retailers",
			"POST /batch_predict":          "Predict multiple items",
			"GET /available_options":       "Known brands, categories, materials, retailers and seasons",
			"POST /api/auth/signup":        "Create account",
			"POST /api/auth/login":         "Log in",
			"POST /api/auth/logout":        "Log out",
			"GET /api/auth/check":          "Check session",
			"POST /api/profile/save":       "Save style profile",
			"GET /api/profile/get":         "Get style profile",
			"POST /api/analyze/undertone":  "Analyse skin undertone from a photo",
			"GET /api/recommendations/get": "Body type styling recommendations",
		},
		"supported_brands":    h.Estimator.Tables.Brands(),
		"supported_retailers": h.Estimator.Tables.Retailers(),
		"currency":            pricing.Currency,
	})
}

// HomeHandler serves the frontend page, or an inline page when it is missing.
// Unknown paths get a JSON 404.
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		utils.RespondError(w, nil, utils.NotFoundError("Endpoint not found"))
		return
	}
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}

	if h.FrontendDir != "" {
		index := filepath.Join(h.FrontendDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, fallbackHomePage)
}

func (h *Handler) engine() string {
	if h.Engine == "" {
		return EngineSampling
	}
	return h.Engine
}
