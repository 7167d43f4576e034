package storage

import (
	"context"
	"io"
	"time"
)

type FileStorage interface {
	// Upload writes a file and returns its storage path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the file can be fetched from. Backends without
	// signed URLs ignore expiry.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
