// Package storage provides access to the blob store holding raw
// uploaded images.
package storage

import "context"

// ObjectStore writes raw bytes to object storage and resolves public
// URLs for stored objects.
type ObjectStore interface {
	// Put writes data under key and returns a publicly resolvable URL
	// for the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// PublicURL returns the publicly resolvable URL for an existing key.
	PublicURL(key string) string
}
