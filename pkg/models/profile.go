// Package models contains domain types for medscan-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a user's account-level record. It owns zero or
// more medications; deleting a profile cascades to its medications.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
