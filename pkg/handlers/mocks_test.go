package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockIngestionService implements services.IngestionService for handler tests.
type mockIngestionService struct {
	medication *models.Medication
	err        error

	lastProfileID uuid.UUID
	lastFilename  string
	lastData      []byte
}

func (m *mockIngestionService) Ingest(ctx context.Context, profileID uuid.UUID, filename string, data []byte) (*models.Medication, error) {
	m.lastProfileID = profileID
	m.lastFilename = filename
	m.lastData = data
	if m.err != nil {
		return nil, m.err
	}
	return m.medication, nil
}

// mockMedicationService implements services.MedicationService for handler tests.
type mockMedicationService struct {
	medication *models.Medication
	getErr     error
	listed     []*models.Medication
	listErr    error

	lastOwner *uuid.UUID
	lastSkip  int
	lastLimit int
}

func (m *mockMedicationService) Get(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Medication, error) {
	m.lastOwner = ownerID
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.medication == nil || m.medication.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return m.medication, nil
}

func (m *mockMedicationService) List(ctx context.Context, ownerID *uuid.UUID, skip, limit int) ([]*models.Medication, error) {
	m.lastOwner = ownerID
	m.lastSkip = skip
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listed == nil {
		return []*models.Medication{}, nil
	}
	return m.listed, nil
}

// mockProfileService implements services.ProfileService for handler tests.
type mockProfileService struct {
	profile   *models.Profile
	getErr    error
	createErr error
	deleteErr error
}

func (m *mockProfileService) Create(ctx context.Context, profile *models.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	profile.ID = uuid.New()
	return nil
}

func (m *mockProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil || m.profile.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return m.profile, nil
}

func (m *mockProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteErr
}
