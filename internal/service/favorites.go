package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// FavoritesService manages each user's capped favorite list.
type FavoritesService struct {
	store   *store.Store
	emitter store.EventEmitter
	logger  *slog.Logger
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(s *store.Store, emitter store.EventEmitter, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{
		store:   s,
		emitter: emitter,
		logger:  logger,
	}
}

// Add puts a book snapshot at the front of the user's favorite list.
// Duplicates and additions past the cap are rejected without mutation.
func (s *FavoritesService) Add(ctx context.Context, userID string, snapshot domain.BookSnapshot) ([]domain.BookSnapshot, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to manage favorites")
	}
	if snapshot.ID == "" || snapshot.Title == "" {
		return nil, domainerrors.Validation("book id and title are required")
	}

	var books []domain.BookSnapshot
	err := s.store.Favorites.Mutate(ctx, userID, func(current *domain.Favorites) (*domain.Favorites, error) {
		fav := current
		if fav == nil {
			fav = newFavorites(userID)
		}

		switch fav.Add(snapshot) {
		case domain.FavoriteAlreadyPresent:
			return nil, domainerrors.Rejected("this book is already in your favorites")
		case domain.FavoriteLimitReached:
			return nil, domainerrors.Rejectedf("favorites are limited to %d books", domain.MaxFavorites)
		}

		books = fav.Books
		return fav, nil
	})
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	s.emitUpdated(userID, books)
	return books, nil
}

// Remove deletes a book from the user's favorite list.
// Removing a book that is not favorited is a no-op success.
func (s *FavoritesService) Remove(ctx context.Context, userID, bookID string) ([]domain.BookSnapshot, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to manage favorites")
	}

	var books []domain.BookSnapshot
	err := s.store.Favorites.Mutate(ctx, userID, func(current *domain.Favorites) (*domain.Favorites, error) {
		if current == nil {
			books = nil
			return nil, nil
		}
		current.Remove(bookID)
		books = current.Books
		return current, nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}

	s.emitUpdated(userID, books)
	return books, nil
}

// Clear empties the user's favorite list. Unconditional once invoked.
func (s *FavoritesService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domainerrors.Unauthorized("sign in to manage favorites")
	}

	err := s.store.Favorites.Mutate(ctx, userID, func(current *domain.Favorites) (*domain.Favorites, error) {
		if current == nil {
			return nil, nil
		}
		current.Clear()
		return current, nil
	})
	if err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}

	s.emitUpdated(userID, nil)
	return nil
}

// List returns the user's favorites, newest first. A user who never
// favorited anything gets an empty list, not an error.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]domain.BookSnapshot, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to manage favorites")
	}

	fav, err := s.store.Favorites.Get(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return []domain.BookSnapshot{}, nil
		}
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	return fav.Books, nil
}

func (s *FavoritesService) emitUpdated(userID string, books []domain.BookSnapshot) {
	if s.emitter != nil {
		s.emitter.Emit(sse.NewFavoritesUpdatedEvent(userID, books))
	}
}

func newFavorites(userID string) *domain.Favorites {
	now := time.Now()
	return &domain.Favorites{
		ID:        userID,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
