// Package files stores uploaded resume files on local disk or in an
// S3-compatible bucket.
package files

import "context"

// Stored describes where an uploaded file ended up.
type Stored struct {
	Key string
	URL string
}

// Store saves and retrieves raw upload bytes keyed by an opaque key.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (Stored, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
