package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/media"
	"github.com/bookswipe/bookswipe-server/internal/search"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
	"github.com/bookswipe/bookswipe-server/internal/util"
)

// CatalogService manages the book catalog: operator CRUD, full-text
// search, and the cover pipeline. Swipe engagement never goes through
// here; it creates aggregate documents lazily in the store.
type CatalogService struct {
	store   *store.Store
	search  *search.Index
	covers  *media.CoverService
	emitter store.EventEmitter
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	s *store.Store,
	idx *search.Index,
	covers *media.CoverService,
	emitter store.EventEmitter,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		store:   s,
		search:  idx,
		covers:  covers,
		emitter: emitter,
		logger:  logger,
	}
}

// CreateBookRequest contains the fields for a catalog addition.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Description   string `json:"description"`
	CoverURL      string `json:"cover_url"`
	PageCount     int    `json:"page_count"`
	PublishedDate string `json:"published_date"`
}

// Create adds a book to the catalog. The slug derived from the title is
// the book's identity; creating the same title twice is a conflict.
// Cover processing happens in the background so catalog writes never
// wait on an image download.
func (s *CatalogService) Create(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	slug := util.BookSlug(req.Title)
	book := &domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		PageCount:     req.PageCount,
		PublishedDate: req.PublishedDate,
	}
	book.ID = slug
	book.InitTimestamps()

	if err := s.store.Books.Create(ctx, slug, book); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("a book with slug %q already exists", slug)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.indexBook(book)

	if req.CoverURL != "" {
		go s.processCover(context.WithoutCancel(ctx), slug, req.CoverURL)
	}

	if s.emitter != nil {
		s.emitter.Emit(sse.NewBookCreatedEvent(book))
	}

	if s.logger != nil {
		s.logger.Info("Book added to catalog", "book_id", slug, "title", req.Title)
	}

	return book, nil
}

// Get returns a catalog book by slug, falling back to the reserved
// collection so reserved titles have a detail page too.
func (s *CatalogService) Get(ctx context.Context, slug string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, slug)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get book: %w", err)
	}

	book, err = s.store.ReservedBooks.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get reserved book: %w", err)
	}
	return book, nil
}

// List returns the whole catalog in stable store order.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// Delete removes a book from the catalog and the search index.
// Idempotent; deleting an unknown slug succeeds.
func (s *CatalogService) Delete(ctx context.Context, slug string) error {
	if err := s.store.Books.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if s.search != nil {
		if err := s.search.DeleteBook(ctx, slug); err != nil && s.logger != nil {
			s.logger.Warn("Failed to remove book from search index", "book_id", slug, "error", err)
		}
	}

	if s.emitter != nil {
		s.emitter.Emit(sse.NewBookDeletedEvent(slug))
	}

	if s.logger != nil {
		s.logger.Info("Book removed from catalog", "book_id", slug)
	}

	return nil
}

// Search runs a full-text query over title and author and hydrates the
// hits from the store. Index hits whose document has since been deleted
// are skipped.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]*domain.Book, error) {
	if s.search == nil {
		return nil, domainerrors.Internal("search is not configured")
	}

	slugs, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	books := make([]*domain.Book, 0, len(slugs))
	for _, slug := range slugs {
		book, err := s.store.Books.Get(ctx, slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get book %s: %w", slug, err)
		}
		books = append(books, book)
	}
	return books, nil
}

// EnsureReserved writes a reserved title into its dedicated collection.
// Called at startup from config so the lookup resolver's secondary
// collection always holds the configured titles.
func (s *CatalogService) EnsureReserved(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		book.ID = util.BookSlug(book.Title)
	}
	if book.CreatedAt.IsZero() {
		book.InitTimestamps()
	}

	if err := s.store.ReservedBooks.Upsert(ctx, book.ID, book); err != nil {
		return fmt.Errorf("ensure reserved book %s: %w", book.ID, err)
	}
	return nil
}

// RebuildSearchIndex reindexes the whole catalog. Used at startup when
// the index directory is fresh.
func (s *CatalogService) RebuildSearchIndex(ctx context.Context) (int, error) {
	if s.search == nil {
		return 0, nil
	}

	count := 0
	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			return count, fmt.Errorf("list books: %w", err)
		}
		if err := s.search.IndexBook(ctx, book); err != nil {
			return count, fmt.Errorf("index book %s: %w", book.ID, err)
		}
		count++
	}
	return count, nil
}

func (s *CatalogService) indexBook(book *domain.Book) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexBook(context.Background(), book); err != nil && s.logger != nil {
		s.logger.Warn("Failed to index book", "book_id", book.ID, "error", err)
	}
}

// processCover downloads the cover, stores it locally, and computes a
// BlurHash placeholder. Best-effort: the book keeps its remote URL if
// the pipeline fails.
func (s *CatalogService) processCover(ctx context.Context, slug, coverURL string) {
	if s.covers == nil {
		return
	}

	result, err := s.covers.Process(ctx, slug, coverURL)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Cover processing failed", "book_id", slug, "error", err)
		}
		return
	}

	err = s.store.Books.Mutate(ctx, slug, func(book *domain.Book) (*domain.Book, error) {
		if book == nil {
			return nil, nil // Deleted while the cover was downloading
		}
		book.CoverBlurHash = result.BlurHash
		if result.LocalURL != "" {
			book.CoverURL = result.LocalURL
		}
		book.Touch()
		return book, nil
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("Failed to store cover result", "book_id", slug, "error", err)
	}
}
