package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// lookupTimeout bounds a single resolution attempt. A slow store read
// surfaces as a retry-later error instead of a hung request.
const lookupTimeout = 30 * time.Second

// identifierPattern accepts bare ISBN-10 through ISBN-13 digit strings.
// Checked before any store access so garbage input never reaches a scan.
var identifierPattern = regexp.MustCompile(`^[0-9]{10,13}$`)

// ResolvedBook is the lookup result with timestamps flattened to plain
// RFC 3339 strings, matching what clients persist locally.
type ResolvedBook struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	CoverBlurHash string `json:"cover_blur_hash,omitempty"`
	Description   string `json:"description,omitempty"`
	ISBN          string `json:"isbn"`
	PageCount     int    `json:"page_count,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Likes         int64  `json:"likes"`
	Dislikes      int64  `json:"dislikes"`
	InfiniteLikes bool   `json:"infinite_likes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// LookupService resolves bare ISBN identifiers to catalog books.
type LookupService struct {
	store    *store.Store
	reserved *domain.ReservedBookTable
	logger   *slog.Logger
}

// NewLookupService creates a new lookup service.
func NewLookupService(s *store.Store, reserved *domain.ReservedBookTable, logger *slog.Logger) *LookupService {
	return &LookupService{
		store:    s,
		reserved: reserved,
		logger:   logger,
	}
}

// Resolve finds the book for an ISBN identifier. Reserved identifiers
// resolve against their own collection; everything else goes through
// the primary catalog's ISBN index. A miss returns NotFound so the
// caller can route into the suggestion flow with the identifier as a
// pre-filled hint.
func (s *LookupService) Resolve(ctx context.Context, identifier string) (*ResolvedBook, error) {
	if !identifierPattern.MatchString(identifier) {
		return nil, domainerrors.Validation("identifier must be a 10 to 13 digit ISBN")
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	var (
		book *domain.Book
		err  error
		rule = s.reserved.ByISBN(identifier)
	)
	if rule != nil {
		book, err = s.store.ReservedBooks.GetByIndex(ctx, "isbn", identifier)
	} else {
		book, err = s.store.Books.GetByIndex(ctx, "isbn", identifier)
	}

	switch {
	case err == nil:
		return resolvedFrom(book, rule), nil
	case errors.Is(err, store.ErrNotFound):
		return nil, domainerrors.NotFound("no book matches this identifier")
	case errors.Is(err, context.DeadlineExceeded):
		if s.logger != nil {
			s.logger.Warn("Lookup timed out", "identifier", identifier)
		}
		return nil, domainerrors.Timeout("lookup took too long, try again in a moment")
	default:
		return nil, fmt.Errorf("resolve %s: %w", identifier, err)
	}
}

// resolvedFrom flattens a book into the lookup DTO.
func resolvedFrom(book *domain.Book, rule *domain.ReservedBook) *ResolvedBook {
	resolved := &ResolvedBook{
		Slug:          book.ID,
		Title:         book.Title,
		Author:        book.Author,
		CoverURL:      book.CoverURL,
		CoverBlurHash: book.CoverBlurHash,
		Description:   book.Description,
		ISBN:          book.ISBN,
		PageCount:     book.PageCount,
		PublishedDate: book.PublishedDate,
		Likes:         book.Likes,
		Dislikes:      book.Dislikes,
		CreatedAt:     book.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     book.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if rule != nil {
		resolved.InfiniteLikes = rule.InfiniteLikes
	}
	return resolved
}
