// Package apperrors defines sentinel errors shared across the service.
package apperrors

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when an upload is rejected before any
	// storage or recognition call (missing file, empty bytes).
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when the blob store write fails.
	ErrStorage = errors.New("storage failure")

	// ErrRecognition is returned when the OCR call fails or times out.
	ErrRecognition = errors.New("recognition failure")

	// ErrIngestionFailed is the umbrella surfaced to clients for any
	// failure during the upload workflow. The underlying cause is
	// attached via wrapping and logged server-side only.
	ErrIngestionFailed = errors.New("ingestion failed")
)
