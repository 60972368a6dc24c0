package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// maxCoverSize limits download size to prevent memory exhaustion.
	maxCoverSize = 10 * 1024 * 1024 // 10MB

	// downloadTimeout is the maximum time for a cover download.
	downloadTimeout = 30 * time.Second
)

// CoverResult contains the outcome of the cover pipeline for one book.
type CoverResult struct {
	LocalURL string // Server-relative URL the client fetches the cover from
	BlurHash string // Placeholder hash for progressive rendering
	Size     int64  // Stored file size in bytes
}

// CoverService downloads cover images, stores them locally, and
// computes a BlurHash placeholder for each.
type CoverService struct {
	httpClient *http.Client
	storage    *Storage
	logger     *slog.Logger
}

// NewCoverService creates a new cover service.
func NewCoverService(storage *Storage, logger *slog.Logger) *CoverService {
	return &CoverService{
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
		storage: storage,
		logger:  logger,
	}
}

// Process fetches the cover at url, stores it for the slug, and
// computes its BlurHash. A cover that stores fine but fails BlurHash
// encoding still succeeds with an empty hash.
func (c *CoverService) Process(ctx context.Context, slug, url string) (*CoverResult, error) {
	if url == "" {
		return nil, errors.New("empty cover URL")
	}

	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	// Read with size limit
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverSize))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	if err := c.storage.Save(slug, data); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	result := &CoverResult{
		LocalURL: CoverURL(slug),
		Size:     int64(len(data)),
	}

	hash, err := ComputeBlurHash(data)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("failed to compute blurhash",
				"book_id", slug,
				"error", err,
			)
		}
	} else {
		result.BlurHash = hash
	}

	if c.logger != nil {
		c.logger.Info("downloaded cover",
			"book_id", slug,
			"size", result.Size,
			"blurhash", result.BlurHash != "",
		)
	}

	return result, nil
}

// Get returns the stored cover bytes for a book.
func (c *CoverService) Get(slug string) ([]byte, error) {
	return c.storage.Get(slug)
}

// Exists checks whether a stored cover exists for a book.
func (c *CoverService) Exists(slug string) bool {
	return c.storage.Exists(slug)
}

// Delete removes a book's stored cover. Idempotent.
func (c *CoverService) Delete(slug string) error {
	return c.storage.Delete(slug)
}

// CoverURL returns the server-relative URL for a book's stored cover.
func CoverURL(slug string) string {
	return "/api/v1/books/" + slug + "/cover"
}
