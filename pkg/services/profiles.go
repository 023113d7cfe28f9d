package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
	"github.com/medscan-io/medscan-engine/pkg/repositories"
)

// ProfileService exposes operations over user profiles.
type ProfileService interface {
	// Create creates a profile. A zero UserID is replaced with a fresh
	// identity reference.
	Create(ctx context.Context, profile *models.Profile) error

	// Get returns a profile by ID.
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// Delete removes a profile; its medications are deleted with it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// profileService implements ProfileService.
type profileService struct {
	profiles repositories.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles repositories.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

// Create validates and persists a new profile.
func (s *profileService) Create(ctx context.Context, profile *models.Profile) error {
	if profile.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", apperrors.ErrValidation)
	}
	if profile.UserID == uuid.Nil {
		profile.UserID = uuid.New()
	}

	return s.profiles.Create(ctx, profile)
}

// Get returns a profile by ID.
func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profiles.Get(ctx, id)
}

// Delete removes a profile by ID.
func (s *profileService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Delete(ctx, id)
}

// Ensure profileService implements ProfileService at compile time.
var _ ProfileService = (*profileService)(nil)
