package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/services"
)

// maxUploadSize bounds one medication photo upload.
const maxUploadSize = 10 << 20 // 10 MB

// profileHeader carries the caller's profile identity until real
// authentication is wired in front of this service.
const profileHeader = "X-Profile-ID"

// medicationNotFoundDetail is the fixed body for missing medications.
const medicationNotFoundDetail = "Medication not found"

// UploadResponse for POST /medications/upload.
type UploadResponse struct {
	Message      string `json:"message"`
	MedicationID string `json:"medication_id"`
	Status       string `json:"status"`
}

// MedicationHandler handles medication HTTP requests.
type MedicationHandler struct {
	ingestion   services.IngestionService
	medications services.MedicationService
	logger      *zap.Logger
}

// NewMedicationHandler creates a new medication handler.
func NewMedicationHandler(
	ingestion services.IngestionService,
	medications services.MedicationService,
	logger *zap.Logger,
) *MedicationHandler {
	return &MedicationHandler{
		ingestion:   ingestion,
		medications: medications,
		logger:      logger,
	}
}

// RegisterRoutes registers the medication handler's routes on the given mux.
func (h *MedicationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /medications/upload", h.Upload)
	mux.HandleFunc("GET /medications/list", h.List)
	mux.HandleFunc("GET /medications/{medicationID}", h.Get)
}

// Upload handles POST /medications/upload.
// Accepts a multipart form with "file" (the packaging photo) and
// "profile_id" (the owning profile; the X-Profile-ID header works too).
func (h *MedicationHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "expected a multipart form with a file field"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profileID, ok := h.callerProfile(r)
	if !ok {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "profile_id is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "missing file (form field 'file')"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "failed to read uploaded file"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	medication, err := h.ingestion.Ingest(r.Context(), profileID, header.Filename, data)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "invalid upload"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		// Full cause stays server-side; clients get the umbrella only.
		h.logger.Error("Ingestion failed",
			zap.String("profile_id", profileID.String()),
			zap.String("filename", header.Filename),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "ingestion_failed", "failed to process the uploaded image"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := UploadResponse{
		Message:      "Medication uploaded and processed successfully",
		MedicationID: medication.ID.String(),
		Status:       medication.Status,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /medications/list?skip=&limit=.
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", services.DefaultListLimit)

	var owner *uuid.UUID
	if profileID, ok := h.callerProfile(r); ok {
		owner = &profileID
	}

	medications, err := h.medications.List(r.Context(), owner, skip, limit)
	if err != nil {
		h.logger.Error("Failed to list medications", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_medications_failed", "failed to list medications"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, medications); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /medications/{medicationID}.
// A malformed identifier is indistinguishable from a missing record.
func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("medicationID"))
	if err != nil {
		h.writeNotFound(w)
		return
	}

	var owner *uuid.UUID
	if profileID, ok := h.callerProfile(r); ok {
		owner = &profileID
	}

	medication, err := h.medications.Get(r.Context(), id, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeNotFound(w)
			return
		}
		h.logger.Error("Failed to get medication",
			zap.String("medication_id", id.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_medication_failed", "failed to get medication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, medication); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *MedicationHandler) writeNotFound(w http.ResponseWriter) {
	if err := WriteJSON(w, http.StatusNotFound, map[string]string{"detail": medicationNotFoundDetail}); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// callerProfile resolves the caller's profile from the X-Profile-ID
// header or, for form submissions, the profile_id form value.
func (h *MedicationHandler) callerProfile(r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(profileHeader)
	if raw == "" {
		raw = r.FormValue("profile_id")
	}
	if raw == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
