package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadedImage is the audit record for a raw upload. It is written in
// the same transaction as the medication it produced, so a row exists
// only for ingestions that completed.
type UploadedImage struct {
	ID         uuid.UUID `json:"id"`
	StorageRef string    `json:"storage_ref"`
	UploadedAt time.Time `json:"uploaded_at"`
}
