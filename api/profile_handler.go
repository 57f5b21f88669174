package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/utils"
)

type profileRequest struct {
	Gender         string          `json:"gender"`
	BodyType       string          `json:"body_type"`
	Measurements   json.RawMessage `json:"measurements"`
	Undertone      string          `json:"undertone"`
	Season         string          `json:"season"`
	ColorSeason    string          `json:"color_season"`
	ColorPalette   json.RawMessage `json:"color_palette"`
	DominantColors json.RawMessage `json:"dominant_colors"`
	SkinAnalysis   json.RawMessage `json:"skin_analysis"`
	Preferences    json.RawMessage `json:"preferences"`
}

type profileView struct {
	Gender       string          `json:"gender"`
	BodyType     string          `json:"body_type"`
	Measurements json.RawMessage `json:"measurements"`
	Undertone    string          `json:"undertone"`
	Season       string          `json:"season"`
	ColorPalette json.RawMessage `json:"color_palette"`
	SkinAnalysis json.RawMessage `json:"skin_analysis"`
	Preferences  json.RawMessage `json:"preferences"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// blob stores raw JSON as text; absent or null values become empty
func blob(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return string(raw)
}

func unblob(s, empty string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return json.RawMessage(empty)
	}
	return json.RawMessage(s)
}

func viewProfile(p *models.UserProfile) profileView {
	return profileView{
		Gender:       p.Gender,
		BodyType:     p.BodyType,
		Measurements: unblob(p.Measurements, "{}"),
		Undertone:    p.Undertone,
		Season:       p.Season,
		ColorPalette: unblob(p.ColorPalette, "[]"),
		SkinAnalysis: unblob(p.SkinAnalysis, "null"),
		Preferences:  unblob(p.Preferences, "{}"),
		UpdatedAt:    p.UpdatedAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// SaveProfileHandler replaces the caller's style profile
func (h *Handler) SaveProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Save Profile API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}
	user, _ := GetUserFromContext(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	profile := &models.UserProfile{
		UserID:       user.ID,
		Gender:       strings.TrimSpace(req.Gender),
		BodyType:     strings.TrimSpace(req.BodyType),
		Measurements: blob(req.Measurements),
		Undertone:    strings.TrimSpace(req.Undertone),
		Season:       strings.TrimSpace(firstNonEmpty(req.Season, req.ColorSeason)),
		ColorPalette: firstNonEmpty(blob(req.ColorPalette), blob(req.DominantColors)),
		SkinAnalysis: blob(req.SkinAnalysis),
		Preferences:  blob(req.Preferences),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := h.Store.UpsertProfile(r.Context(), profile); err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile saved for user %s", user.ID))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile saved successfully",
	})
}

// GetProfileHandler returns the caller's profile, or null when none is saved
func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}
	user, _ := GetUserFromContext(r.Context())

	profile, err := h.Store.GetProfile(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "profile": nil})
		return
	}
	if err != nil {
		utils.RespondError(w, nil, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "profile": viewProfile(profile)})
}
