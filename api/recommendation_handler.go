package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/closetly/recommendations"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/utils"
)

// RecommendationsHandler returns styling advice for the caller's saved body type
func (h *Handler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Recommendations API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodGet) {
		return
	}
	user, _ := GetUserFromContext(r.Context())

	profile, err := h.Store.GetProfile(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Please complete your profile first"))
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}
	if profile.Gender == "" || profile.BodyType == "" {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Profile is missing gender or body type"))
		return
	}

	rec, err := recommendations.Lookup(profile.Gender, profile.BodyType)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("No recommendations for %s body type %q", profile.Gender, profile.BodyType))
		return
	}

	view := viewProfile(profile)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"gender":          strings.ToLower(profile.Gender),
		"recommendations": rec,
		"season":          profile.Season,
		"undertone":       profile.Undertone,
		"color_palette":   view.ColorPalette,
	})
}
