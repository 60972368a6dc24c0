package service

import (
	"context"
	"log/slog"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// FeedService serves the swipe deck and tracks each user's position in it.
// The deck is the whole catalog in stable store order; the position is a
// plain integer cursor persisted on the user.
type FeedService struct {
	store   *store.Store
	emitter store.EventEmitter
	logger  *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(s *store.Store, emitter store.EventEmitter, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:   s,
		emitter: emitter,
		logger:  logger,
	}
}

// Load returns the full catalog and the user's persisted feed position.
// A store failure degrades to an empty deck rather than an error - the
// client shows "nothing to swipe", not a crash. Unknown or empty user
// IDs start at position zero.
func (s *FeedService) Load(ctx context.Context, userID string) ([]*domain.Book, int) {
	var books []*domain.Book
	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Failed to load feed catalog", "error", err)
			}
			return nil, 0
		}
		books = append(books, book)
	}

	if userID == "" {
		return books, 0
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to load feed position", "user_id", userID, "error", err)
		}
		return books, 0
	}

	return books, user.FeedIndex
}

// Current returns the book at the cursor, wrapping around so the deck is
// cyclic. Returns nil for an empty deck.
func (s *FeedService) Current(books []*domain.Book, index int) *domain.Book {
	if len(books) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	return books[index%len(books)]
}

// Advance moves the cursor forward and returns the new index immediately.
// Persistence is fire-and-forget: the swipe animation never waits on a
// write, and a failed write costs the user their position, nothing more.
func (s *FeedService) Advance(ctx context.Context, userID string, index int) int {
	newIndex := index + 1

	if userID == "" {
		return newIndex
	}

	go func(ctx context.Context) {
		err := s.store.Users.Mutate(ctx, userID, func(user *domain.User) (*domain.User, error) {
			if user == nil {
				return nil, store.ErrNotFound
			}
			user.FeedIndex = newIndex
			user.Touch()
			return user, nil
		})
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Failed to persist feed position",
					"user_id", userID,
					"index", newIndex,
					"error", err,
				)
			}
			return
		}

		if s.emitter != nil {
			s.emitter.Emit(sse.NewFeedPositionEvent(userID, newIndex))
		}
	}(context.WithoutCancel(ctx))

	return newIndex
}
