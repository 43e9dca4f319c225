package recipe

import (
	"context"
	"time"
)

// ImageStorage abstracts the object store holding recipe images.
// Implementations live in infrastructure/storage.
type ImageStorage interface {
	// Upload writes an object to storage
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether an object is present in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
