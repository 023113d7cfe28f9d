package models

import (
	"time"

	"github.com/google/uuid"
)

// Medication status values. Status is the only field expected to
// change after creation.
const (
	MedicationStatusPending   = "pending"
	MedicationStatusProcessed = "processed"
)

// Medication represents one recognized medication event. ScanDate and
// ScannedText are set once at ingestion time and never mutated.
type Medication struct {
	ID                  uuid.UUID  `json:"id"`
	ProfileID           uuid.UUID  `json:"profile_id"`
	Title               string     `json:"title"`
	ScanDate            time.Time  `json:"scan_date"`
	ActiveIngredients   JSONBArray `json:"active_ingredients"`
	ScannedText         string     `json:"scanned_text"`
	Dosage              string     `json:"dosage"`
	PrescriptionDetails JSONBMap   `json:"prescription_details"`
	ImageURL            string     `json:"image_url"`
	Status              string     `json:"status"`
}
