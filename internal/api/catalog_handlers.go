package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/bookswipe/bookswipe-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the whole catalog in stable store order",
		Tags:        []string{"Catalog"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Add book",
		Description: "Adds a book to the catalog. Admin only.",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search books",
		Description: "Full-text search over titles and authors",
		Tags:        []string{"Catalog"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{slug}",
		Summary:     "Get book",
		Description: "Returns a book by slug, including reserved titles",
		Tags:        []string{"Catalog"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{slug}",
		Summary:     "Delete book",
		Description: "Removes a book from the catalog and search index. Admin only.",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)

	// Cover bytes bypass huma; chi serves the image directly.
	s.router.Get("/api/v1/books/{slug}/cover", s.handleServeCover)
}

// === DTOs ===

// CreateBookRequest is the request body for adding a catalog book.
type CreateBookRequest struct {
	Title         string `json:"title" maxLength:"500" doc:"Book title"`
	Author        string `json:"author,omitempty" maxLength:"500" doc:"Author"`
	ISBN          string `json:"isbn,omitempty" maxLength:"13" doc:"ISBN"`
	Description   string `json:"description,omitempty" doc:"Description"`
	CoverURL      string `json:"cover_url,omitempty" format:"uri" maxLength:"2000" doc:"Remote cover URL to mirror locally"`
	PageCount     int    `json:"page_count,omitempty" minimum:"0" doc:"Page count"`
	PublishedDate string `json:"published_date,omitempty" doc:"Publication date"`
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateBookRequest
}

// BooksOutput wraps a book list for Huma.
type BooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Catalog books"`
	}
}

// GetBookInput contains parameters for fetching a book.
type GetBookInput struct {
	Slug string `path:"slug" doc:"Book slug"`
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Book slug"`
}

// SearchBooksInput contains full-text search parameters.
type SearchBooksInput struct {
	Query string `query:"q" required:"true" doc:"Search terms"`
	Limit int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum results"`
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BooksOutput, error) {
	books, err := s.services.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &BooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, book := range books {
		out.Body.Books[i] = bookResponseFrom(book)
	}
	return out, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.Create(ctx, service.CreateBookRequest{
		Title:         input.Body.Title,
		Author:        input.Body.Author,
		ISBN:          input.Body.ISBN,
		Description:   input.Body.Description,
		CoverURL:      input.Body.CoverURL,
		PageCount:     input.Body.PageCount,
		PublishedDate: input.Body.PublishedDate,
	})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponseFrom(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Catalog.Get(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponseFrom(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*EmptyOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.Delete(ctx, input.Slug); err != nil {
		return nil, err
	}
	return &EmptyOutput{}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*BooksOutput, error) {
	books, err := s.services.Catalog.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}

	out := &BooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, book := range books {
		out.Body.Books[i] = bookResponseFrom(book)
	}
	return out, nil
}

// handleServeCover streams the locally mirrored cover image.
func (s *Server) handleServeCover(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if s.services.Covers == nil || !s.services.Covers.Exists(slug) {
		http.NotFound(w, r)
		return
	}

	data, err := s.services.Covers.Get(slug)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to read cover", "book_id", slug, "error", err)
		}
		http.Error(w, "failed to read cover", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}
