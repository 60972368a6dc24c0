package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

func (s *Server) registerFavoritesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's favorite books, newest first",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites",
		Summary:     "Add favorite",
		Description: "Adds a book snapshot to the user's favorites, capped at fifteen",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{bookId}",
		Summary:     "Remove favorite",
		Description: "Removes a book from the user's favorites; unknown books are a no-op",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearFavorites",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites",
		Summary:     "Clear favorites",
		Description: "Removes every favorite. Unconditional once invoked.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearFavorites)
}

// === DTOs ===

// FavoriteBook is the denormalized snapshot stored in favorite lists.
type FavoriteBook struct {
	ID       string `json:"id" doc:"Book slug"`
	Title    string `json:"title" doc:"Title at favoriting time"`
	Author   string `json:"author,omitempty" doc:"Author at favoriting time"`
	CoverURL string `json:"cover_url,omitempty" doc:"Cover URL at favoriting time"`
	ISBN     string `json:"isbn,omitempty" doc:"ISBN at favoriting time"`
}

func favoriteBooksFrom(snapshots []domain.BookSnapshot) []FavoriteBook {
	books := make([]FavoriteBook, len(snapshots))
	for i, snap := range snapshots {
		books[i] = FavoriteBook{
			ID:       snap.ID,
			Title:    snap.Title,
			Author:   snap.Author,
			CoverURL: snap.CoverURL,
			ISBN:     snap.ISBN,
		}
	}
	return books
}

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Authorization string `header:"Authorization"`
}

// FavoritesOutput wraps a favorites list for Huma.
type FavoritesOutput struct {
	Body struct {
		Books []FavoriteBook `json:"books" doc:"Favorites, newest first"`
	}
}

// AddFavoriteRequest is the request body for adding a favorite.
type AddFavoriteRequest struct {
	ID       string `json:"id" maxLength:"500" doc:"Book slug"`
	Title    string `json:"title" maxLength:"500" doc:"Book title"`
	Author   string `json:"author,omitempty" maxLength:"500" doc:"Author"`
	CoverURL string `json:"cover_url,omitempty" maxLength:"2000" doc:"Cover URL"`
	ISBN     string `json:"isbn,omitempty" maxLength:"13" doc:"ISBN"`
}

// AddFavoriteInput wraps the add request for Huma.
type AddFavoriteInput struct {
	Authorization string `header:"Authorization"`
	Body          AddFavoriteRequest
}

// RemoveFavoriteInput contains parameters for removing a favorite.
type RemoveFavoriteInput struct {
	Authorization string `header:"Authorization"`
	BookID        string `path:"bookId" doc:"Book slug"`
}

// ClearFavoritesInput contains parameters for clearing favorites.
type ClearFavoritesInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*FavoritesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &FavoritesOutput{}
	out.Body.Books = favoriteBooksFrom(books)
	return out, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *AddFavoriteInput) (*FavoritesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Favorites.Add(ctx, userID, domain.BookSnapshot{
		ID:       input.Body.ID,
		Title:    input.Body.Title,
		Author:   input.Body.Author,
		CoverURL: input.Body.CoverURL,
		ISBN:     input.Body.ISBN,
	})
	if err != nil {
		return nil, err
	}

	out := &FavoritesOutput{}
	out.Body.Books = favoriteBooksFrom(books)
	return out, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *RemoveFavoriteInput) (*FavoritesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Favorites.Remove(ctx, userID, input.BookID)
	if err != nil {
		return nil, err
	}

	out := &FavoritesOutput{}
	out.Body.Books = favoriteBooksFrom(books)
	return out, nil
}

func (s *Server) handleClearFavorites(ctx context.Context, input *ClearFavoritesInput) (*EmptyOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorites.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return &EmptyOutput{}, nil
}
