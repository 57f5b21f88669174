package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/undertone"
	"github.com/raushankrgupta/closetly/utils"
)

// MaxPhotoBytes caps the undertone request body
const MaxPhotoBytes = 10 << 20

type undertoneResponse struct {
	Success bool `json:"success"`
	models.UndertoneVerdict
	Saved    bool   `json:"saved"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// UndertoneHandler classifies the skin undertone of an uploaded photo and,
// for a logged-in caller asking to save, stores the verdict in their profile
func (h *Handler) UndertoneHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Undertone API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var req struct {
		Image string `json:"image"`
		Save  bool   `json:"save"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}
	if req.Image == "" {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Missing required field: image"))
		return
	}

	user, loggedIn := GetUserFromContext(r.Context())
	if req.Save && !loggedIn {
		utils.RespondError(w, &logMessageBuilder, utils.AuthError("Login required to save analysis"))
		return
	}

	photo, err := undertone.Decode(req.Image)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid image data"))
		return
	}

	verdict := h.Analyzer.Analyze(r.Context(), photo)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Undertone %s (%.1f%%), season %s, region %s",
		verdict.Undertone, verdict.Confidence, verdict.Season, verdict.SampleRegion))

	resp := undertoneResponse{Success: true, UndertoneVerdict: verdict}
	if req.Save {
		if err := h.saveVerdict(r, user, verdict); err != nil {
			utils.RespondError(w, &logMessageBuilder, err)
			return
		}
		resp.Saved = true
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Saved to profile of user %s", user.ID))

		if h.Archiver != nil {
			ext := photo.Format
			if ext == "jpeg" {
				ext = "jpg"
			}
			key := fmt.Sprintf("undertone/%s/%s.%s", user.ID, uuid.NewString(), ext)
			url, err := h.Archiver.Archive(r.Context(), key, photo.Raw, photo.ContentType())
			if err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Photo archive failed: %v", err))
			} else {
				resp.PhotoURL = url
			}
		}
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// saveVerdict merges the verdict into the user's existing profile
func (h *Handler) saveVerdict(r *http.Request, user *models.User, v models.UndertoneVerdict) error {
	profile, err := h.Store.GetProfile(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.UserProfile{UserID: user.ID}
	} else if err != nil {
		return err
	}

	palette, err := json.Marshal(v.ColorPalette)
	if err != nil {
		return err
	}
	analysis, err := json.Marshal(v.SkinAnalysis)
	if err != nil {
		return err
	}

	profile.Undertone = v.Undertone
	profile.Season = v.Season
	profile.ColorPalette = string(palette)
	profile.SkinAnalysis = string(analysis)
	profile.UpdatedAt = time.Now().UTC()
	return h.Store.UpsertProfile(r.Context(), profile)
}
