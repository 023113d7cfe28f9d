package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
	"github.com/medscan-io/medscan-engine/pkg/services"
)

// CreateProfileRequest for POST /profiles.
type CreateProfileRequest struct {
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
}

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	profiles services.ProfileService
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// RegisterRoutes registers the profile handler's routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /profiles", h.Create)
	mux.HandleFunc("GET /profiles/{profileID}", h.Get)
	mux.HandleFunc("DELETE /profiles/{profileID}", h.Delete)
}

// Create handles POST /profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile := &models.Profile{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "user_id must be a UUID"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		profile.UserID = userID
	}

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "display_name is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create profile", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "create_profile_failed", "failed to create profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, profile); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /profiles/{profileID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseProfileID(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "profile_not_found", "Profile not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get profile",
			zap.String("profile_id", id.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_profile_failed", "failed to get profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, profile); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /profiles/{profileID}.
// Medications owned by the profile are deleted with it.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseProfileID(w, r)
	if !ok {
		return
	}

	if err := h.profiles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "profile_not_found", "Profile not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to delete profile",
			zap.String("profile_id", id.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "delete_profile_failed", "failed to delete profile"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) parseProfileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("profileID"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_profile_id", "profile id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
