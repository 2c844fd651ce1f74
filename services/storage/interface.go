package storage

import "context"

// StorageService resolves stored media identifiers into delivery URLs.
// Uploading is handled by the media pipeline, not this service.
type StorageService interface {
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
}

// NoopStorage is used when no media backend is configured; it returns the
// identifier unchanged.
type NoopStorage struct{}

func (NoopStorage) GetDownloadURL(_ context.Context, _ string, publicID string) (string, error) {
	return publicID, nil
}
