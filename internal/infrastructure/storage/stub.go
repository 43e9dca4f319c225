// Package storage provides object storage backends for recipe images.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	recipeapp "github.com/recipebox/backend/internal/application/recipe"
)

// Ensure StubImageStorage implements ImageStorage
var _ recipeapp.ImageStorage = (*StubImageStorage)(nil)

// StubImageStorage is an in-memory ImageStorage for development and
// tests. It remembers stored keys but discards image bytes, and the
// URLs it hands out are not real.
type StubImageStorage struct {
	// BaseURL is the base URL for generated download URLs
	BaseURL string

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewStubImageStorage creates a new StubImageStorage
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.example.com",
		keys:    make(map[string]struct{}),
	}
}

// Upload records the key and discards the payload
func (s *StubImageStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[storageKey] = struct{}{}

	return nil
}

// GenerateDownloadURL generates a fake download URL for a stored key
func (s *StubImageStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject forgets a stored key. Deleting an unknown key succeeds.
func (s *StubImageStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, storageKey)

	return nil
}

// ObjectExists reports whether the key was stored through this instance
func (s *StubImageStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[storageKey]

	return ok, nil
}
