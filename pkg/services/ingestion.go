// Package services contains the business logic for medscan-engine.
package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/logging"
	"github.com/medscan-io/medscan-engine/pkg/models"
	"github.com/medscan-io/medscan-engine/pkg/ocr"
	"github.com/medscan-io/medscan-engine/pkg/repositories"
	"github.com/medscan-io/medscan-engine/pkg/storage"
)

// IngestionService accepts one uploaded file plus an owning profile
// reference and produces one persisted medication record.
type IngestionService interface {
	// Ingest runs the full upload → store → OCR → persist sequence.
	// Any failure before persistence aborts the whole operation; no
	// partial medication record is ever created.
	Ingest(ctx context.Context, profileID uuid.UUID, filename string, data []byte) (*models.Medication, error)
}

// ingestionService implements IngestionService.
type ingestionService struct {
	medications repositories.MedicationRepository
	profiles    repositories.ProfileRepository
	store       storage.ObjectStore
	recognizer  ocr.Recognizer
	keyPrefix   string
	logger      *zap.Logger
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(
	medications repositories.MedicationRepository,
	profiles repositories.ProfileRepository,
	store storage.ObjectStore,
	recognizer ocr.Recognizer,
	keyPrefix string,
	logger *zap.Logger,
) IngestionService {
	return &ingestionService{
		medications: medications,
		profiles:    profiles,
		store:       store,
		recognizer:  recognizer,
		keyPrefix:   keyPrefix,
		logger:      logger.Named("ingestion"),
	}
}

// dosagePattern matches the first printed strength, e.g. "325mg" or "5 ml".
var dosagePattern = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:mg|mcg|µg|g|ml|iu)\b`)

// Ingest implements the ingestion workflow contract.
func (s *ingestionService) Ingest(ctx context.Context, profileID uuid.UUID, filename string, data []byte) (*models.Medication, error) {
	// Reject malformed uploads before any storage or OCR call.
	if filename == "" {
		return nil, fmt.Errorf("%w: missing filename", apperrors.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", apperrors.ErrValidation)
	}

	if _, err := s.profiles.Get(ctx, profileID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown profile %s", apperrors.ErrValidation, profileID)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIngestionFailed, err)
	}

	key := s.keyPrefix + "/" + filepath.Base(filename)

	publicURL, err := s.store.Put(ctx, key, data, contentTypeFor(filename))
	if err != nil {
		s.logger.Error("Blob store write failed",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w: %w", apperrors.ErrIngestionFailed, apperrors.ErrStorage, err)
	}

	text, err := s.recognizer.Recognise(ctx, data)
	if err != nil {
		s.logger.Error("Recognition failed",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w: %w", apperrors.ErrIngestionFailed, apperrors.ErrRecognition, err)
	}

	medication := &models.Medication{
		ProfileID:         profileID,
		Title:             deriveTitle(text),
		ScannedText:       text,
		Dosage:            dosagePattern.FindString(text),
		ActiveIngredients: models.JSONBArray{},
		PrescriptionDetails: models.JSONBMap{
			"source_filename": filename,
		},
		ImageURL: publicURL,
		Status:   models.MedicationStatusPending,
	}

	if err := s.medications.Create(ctx, medication, key); err != nil {
		s.logger.Error("Failed to persist medication",
			zap.String("profile_id", profileID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIngestionFailed, err)
	}

	s.logger.Info("Ingested medication",
		zap.String("medication_id", medication.ID.String()),
		zap.String("profile_id", profileID.String()),
		zap.Int("image_bytes", len(data)))
	s.logger.Debug("Recognized text",
		zap.String("medication_id", medication.ID.String()),
		zap.String("scanned_text", logging.TruncateScannedText(text)))

	return medication, nil
}

// deriveTitle returns the first non-empty line of the recognized text.
// Packaging prints the brand name first in virtually all layouts.
func deriveTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Ensure ingestionService implements IngestionService at compile time.
var _ IngestionService = (*ingestionService)(nil)
