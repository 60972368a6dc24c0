package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
	"github.com/bookswipe/bookswipe-server/internal/util"
)

// engagementCooldown is how long a (user, book) pair stays locked out
// after a completed engagement mutation. Absorbs double-taps and swipe
// jitter server-side instead of trusting every client to debounce.
const engagementCooldown = 2 * time.Second

// BookSeed carries the denormalized book fields a client sends with an
// engagement. Used to lazily create the aggregate document the first
// time anyone engages with a title.
type BookSeed struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	CoverURL      string `json:"cover_url"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	PageCount     int    `json:"page_count"`
	PublishedDate string `json:"published_date"`
}

func (seed BookSeed) book() *domain.Book {
	return &domain.Book{
		Title:         seed.Title,
		Author:        seed.Author,
		CoverURL:      seed.CoverURL,
		Description:   seed.Description,
		ISBN:          seed.ISBN,
		PageCount:     seed.PageCount,
		PublishedDate: seed.PublishedDate,
	}
}

// EngagementService tracks each user's like/dislike state per book and
// keeps the per-book counters in step with the per-user sets.
type EngagementService struct {
	store    *store.Store
	emitter  store.EventEmitter
	reserved *domain.ReservedBookTable
	guard    *actionGuard
	logger   *slog.Logger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(
	s *store.Store,
	emitter store.EventEmitter,
	reserved *domain.ReservedBookTable,
	logger *slog.Logger,
) *EngagementService {
	return &EngagementService{
		store:    s,
		emitter:  emitter,
		reserved: reserved,
		guard:    newActionGuard(engagementCooldown),
		logger:   logger,
	}
}

// Like records a like for the user on the book the seed describes.
// Returns the book with updated counters.
func (s *EngagementService) Like(ctx context.Context, userID string, seed BookSeed) (*domain.Book, error) {
	if err := validate.Struct(seed); err != nil {
		return nil, formatValidationError(err)
	}

	slug := util.BookSlug(seed.Title)
	release, err := s.acquire(userID, slug)
	if err != nil {
		return nil, err
	}
	defer release()

	book, err := s.store.Engage(ctx, userID, slug, seed.book, func(user *domain.User, book *domain.Book) error {
		switch user.Engagement(slug) {
		case domain.EngagementLiked:
			return domainerrors.Rejected("you already liked this book")
		case domain.EngagementDisliked:
			return domainerrors.Rejected("you already disliked this book; undo it first")
		}
		user.MarkLiked(slug)
		book.Like(time.Now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("like %s: %w", slug, err)
	}

	s.invalidateRankings()

	if s.logger != nil {
		s.logger.Info("Book liked", "user_id", userID, "book_id", slug, "likes", book.Likes)
	}

	return book, nil
}

// Dislike records a dislike for the user on the book the seed describes.
// Reserved titles that forbid dislikes are rejected with their fixed
// message and no mutation.
func (s *EngagementService) Dislike(ctx context.Context, userID string, seed BookSeed) (*domain.Book, error) {
	if err := validate.Struct(seed); err != nil {
		return nil, formatValidationError(err)
	}

	slug := util.BookSlug(seed.Title)
	if rule := s.reserved.BySlug(slug); rule != nil && rule.NoDislikes {
		return nil, domainerrors.Rejected(rule.DislikeMessage)
	}

	release, err := s.acquire(userID, slug)
	if err != nil {
		return nil, err
	}
	defer release()

	book, err := s.store.Engage(ctx, userID, slug, seed.book, func(user *domain.User, book *domain.Book) error {
		switch user.Engagement(slug) {
		case domain.EngagementDisliked:
			return domainerrors.Rejected("you already disliked this book")
		case domain.EngagementLiked:
			return domainerrors.Rejected("you already liked this book; undo it first")
		}
		user.MarkDisliked(slug)
		book.Dislike()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dislike %s: %w", slug, err)
	}

	if s.logger != nil {
		s.logger.Info("Book disliked", "user_id", userID, "book_id", slug, "dislikes", book.Dislikes)
	}

	return book, nil
}

// Undo reverses the user's current engagement with the titled book.
// A like undo removes the most recently recorded like timestamp, not a
// specific one. Undoing with no engagement is rejected without mutation.
func (s *EngagementService) Undo(ctx context.Context, userID, title string) (*domain.Book, error) {
	if title == "" {
		return nil, domainerrors.Validation("title is required")
	}

	slug := util.BookSlug(title)
	release, err := s.acquire(userID, slug)
	if err != nil {
		return nil, err
	}
	defer release()

	var undone domain.EngagementState
	seed := func() *domain.Book { return &domain.Book{Title: title} }

	book, err := s.store.Engage(ctx, userID, slug, seed, func(user *domain.User, book *domain.Book) error {
		undone = user.ClearEngagement(slug)
		switch undone {
		case domain.EngagementLiked:
			book.UndoLike()
		case domain.EngagementDisliked:
			book.UndoDislike()
		default:
			return domainerrors.Rejected("nothing to undo for this book")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("undo engagement %s: %w", slug, err)
	}

	if undone == domain.EngagementLiked {
		s.invalidateRankings()
	}

	if s.logger != nil {
		s.logger.Info("Engagement undone", "user_id", userID, "book_id", slug, "was", string(undone))
	}

	return book, nil
}

// State returns the user's current engagement with the titled book.
func (s *EngagementService) State(ctx context.Context, userID, title string) (domain.EngagementState, error) {
	if title == "" {
		return domain.EngagementNone, domainerrors.Validation("title is required")
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return domain.EngagementNone, fmt.Errorf("get user: %w", err)
	}

	return user.Engagement(util.BookSlug(title)), nil
}

// acquire takes the per-(user, book) guard, translating a busy slot into
// a rejection the client renders as "slow down".
func (s *EngagementService) acquire(userID, slug string) (func(), error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to react to books")
	}

	key := userID + "/" + slug
	if !s.guard.begin(key) {
		return nil, domainerrors.Rejected("hold on, your last reaction is still settling")
	}
	return func() { s.guard.end(key) }, nil
}

func (s *EngagementService) invalidateRankings() {
	if s.emitter != nil {
		s.emitter.Emit(sse.NewRankingsInvalidatedEvent())
	}
}

// actionGuard serializes engagement mutations per key and enforces a
// cooldown after each completed one. One mutation in flight per key;
// a second attempt inside the window is refused, not queued.
type actionGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	cooldown map[string]time.Time
	wait     time.Duration
	now      func() time.Time // swappable for tests
}

func newActionGuard(wait time.Duration) *actionGuard {
	return &actionGuard{
		inflight: make(map[string]struct{}),
		cooldown: make(map[string]time.Time),
		wait:     wait,
		now:      time.Now,
	}
}

// begin claims the key. Returns false if a mutation is in flight or the
// cooldown has not elapsed.
func (g *actionGuard) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[key]; busy {
		return false
	}
	if until, ok := g.cooldown[key]; ok {
		if g.now().Before(until) {
			return false
		}
		delete(g.cooldown, key)
	}

	g.inflight[key] = struct{}{}
	return true
}

// end releases the key and starts its cooldown. Expired cooldown
// entries are swept here; most keys are touched once, so without the
// sweep the map would grow for the life of the process.
func (g *actionGuard) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inflight, key)

	now := g.now()
	for k, until := range g.cooldown {
		if now.After(until) {
			delete(g.cooldown, k)
		}
	}
	g.cooldown[key] = now.Add(g.wait)
}
