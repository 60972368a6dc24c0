// Package media handles book cover download, storage, and placeholder
// generation.
package media

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage manages cover files on disk.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates cover storage under {basePath}/covers/.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	storagePath := filepath.Join(basePath, "covers")
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}

	return &Storage{
		basePath: storagePath,
	}, nil
}

// Save stores cover data for a book.
// Filename format: {slug}.jpg.
func (s *Storage) Save(slug string, imgData []byte) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(slug), imgData, 0o644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}

// Get retrieves cover data for a book.
func (s *Storage) Get(slug string) ([]byte, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cover not found for %s: %w", slug, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks if a cover exists for a book.
func (s *Storage) Exists(slug string) bool {
	if slug == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(slug))
	return err == nil
}

// Delete removes a book's cover. Idempotent.
func (s *Storage) Delete(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(slug)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}

	return nil
}

// Hash computes the SHA256 of a cover.
// Returns a hex-encoded string for ETag/cache validation.
func (s *Storage) Hash(slug string) (string, error) {
	data, err := s.Get(slug)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Path returns the full filesystem path for a book's cover.
func (s *Storage) Path(slug string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.jpg", slug))
}
