// Package ocr provides text recognition for medication packaging
// photos. The recognition backend is treated as an opaque external
// capability behind the Recognizer interface.
package ocr

import "context"

// Recognizer extracts text from an image.
type Recognizer interface {
	// Recognise returns the text visible in the image bytes.
	Recognise(ctx context.Context, image []byte) (string, error)
}
