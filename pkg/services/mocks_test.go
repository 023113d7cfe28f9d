package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockMedicationRepository implements repositories.MedicationRepository.
type mockMedicationRepository struct {
	created    []*models.Medication
	createErr  error
	medication *models.Medication
	getErr     error
	listed     []*models.Medication
	listErr    error

	lastStorageRef string
	lastProfileID  *uuid.UUID
	lastSkip       int
	lastLimit      int
}

func (m *mockMedicationRepository) Create(ctx context.Context, medication *models.Medication, storageRef string) error {
	if m.createErr != nil {
		return m.createErr
	}
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	m.created = append(m.created, medication)
	m.lastStorageRef = storageRef
	return nil
}

func (m *mockMedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.medication == nil || m.medication.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return m.medication, nil
}

func (m *mockMedicationRepository) List(ctx context.Context, profileID *uuid.UUID, skip, limit int) ([]*models.Medication, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastProfileID = profileID
	m.lastSkip = skip
	m.lastLimit = limit
	return m.listed, nil
}

// mockProfileRepository implements repositories.ProfileRepository.
type mockProfileRepository struct {
	profile   *models.Profile
	getErr    error
	createErr error
	deleteErr error
	created   []*models.Profile
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, profile)
	return nil
}

func (m *mockProfileRepository) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil || m.profile.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return m.profile, nil
}

func (m *mockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteErr
}

// mockObjectStore implements storage.ObjectStore.
type mockObjectStore struct {
	putErr  error
	putKeys []string
	putData [][]byte
}

func (m *mockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.putKeys = append(m.putKeys, key)
	m.putData = append(m.putData, data)
	return m.PublicURL(key), nil
}

func (m *mockObjectStore) PublicURL(key string) string {
	return "http://blobs.local/test-bucket/" + key
}

// mockRecognizer implements ocr.Recognizer.
type mockRecognizer struct {
	text   string
	err    error
	images [][]byte
}

func (m *mockRecognizer) Recognise(ctx context.Context, image []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.images = append(m.images, image)
	return m.text, nil
}
