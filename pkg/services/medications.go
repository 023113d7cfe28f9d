package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
	"github.com/medscan-io/medscan-engine/pkg/repositories"
)

// Pagination defaults and bounds for medication listings.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// MedicationService exposes read access to medication records.
type MedicationService interface {
	// Get returns a medication by ID. When ownerID is non-nil the
	// lookup is scoped to that profile; a medication owned by another
	// profile is reported as not found rather than leaked.
	Get(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Medication, error)

	// List returns at most limit medications after skipping skip, in
	// creation order. When ownerID is non-nil only that profile's
	// medications are returned.
	List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]*models.Medication, error)
}

// medicationService implements MedicationService.
type medicationService struct {
	medications repositories.MedicationRepository
}

// NewMedicationService creates a new medication service.
func NewMedicationService(medications repositories.MedicationRepository) MedicationService {
	return &medicationService{medications: medications}
}

// Get returns a medication by ID, applying ownership scoping.
func (s *medicationService) Get(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Medication, error) {
	medication, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ownerID != nil && medication.ProfileID != *ownerID {
		return nil, apperrors.ErrNotFound
	}

	return medication, nil
}

// List returns a page of medications.
func (s *medicationService) List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]*models.Medication, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	medications, err := s.medications.List(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}

	if medications == nil {
		medications = []*models.Medication{}
	}

	return medications, nil
}

// Ensure medicationService implements MedicationService at compile time.
var _ MedicationService = (*medicationService)(nil)
