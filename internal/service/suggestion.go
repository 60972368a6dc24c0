package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/id"
	"github.com/bookswipe/bookswipe-server/internal/metadata/googlebooks"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// SuggestionService handles book suggestions filed after a lookup miss,
// including the best-effort metadata enrichment step.
type SuggestionService struct {
	store    *store.Store
	catalog  *CatalogService
	metadata *googlebooks.Client
	emitter  store.EventEmitter
	logger   *slog.Logger
}

// NewSuggestionService creates a new suggestion service.
// The metadata client may be nil, which disables enrichment.
func NewSuggestionService(
	s *store.Store,
	catalog *CatalogService,
	metadata *googlebooks.Client,
	emitter store.EventEmitter,
	logger *slog.Logger,
) *SuggestionService {
	return &SuggestionService{
		store:    s,
		catalog:  catalog,
		metadata: metadata,
		emitter:  emitter,
		logger:   logger,
	}
}

// CreateSuggestionRequest carries a user's proposal for the catalog.
// Identifier is the ISBN that failed to resolve, forwarded from the
// lookup flow as a hint; users can also suggest by title alone.
type CreateSuggestionRequest struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Author     string `json:"author"`
}

// Create persists a pending suggestion and kicks off background
// enrichment from the Google Books API when an identifier is present.
func (s *SuggestionService) Create(ctx context.Context, userID string, req CreateSuggestionRequest) (*domain.Suggestion, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to suggest books")
	}
	if req.Title == "" && req.Identifier == "" {
		return nil, domainerrors.Validation("a title or an ISBN is required")
	}

	suggestionID, err := id.Generate("sug")
	if err != nil {
		return nil, fmt.Errorf("generate suggestion ID: %w", err)
	}

	suggestion := &domain.Suggestion{
		UserID:     userID,
		Identifier: req.Identifier,
		Title:      req.Title,
		Author:     req.Author,
		Status:     domain.SuggestionPending,
	}
	suggestion.ID = suggestionID
	suggestion.InitTimestamps()

	if err := s.store.Suggestions.Create(ctx, suggestionID, suggestion); err != nil {
		return nil, fmt.Errorf("save suggestion: %w", err)
	}

	if s.emitter != nil {
		s.emitter.Emit(sse.NewSuggestionCreatedEvent(suggestion))
	}

	if s.metadata != nil && req.Identifier != "" {
		go s.enrich(context.WithoutCancel(ctx), suggestionID, req.Identifier)
	}

	if s.logger != nil {
		s.logger.Info("Suggestion created",
			"suggestion_id", suggestionID,
			"user_id", userID,
			"identifier", req.Identifier,
		)
	}

	return suggestion, nil
}

// List returns every suggestion. Admin surface.
func (s *SuggestionService) List(ctx context.Context) ([]*domain.Suggestion, error) {
	var suggestions []*domain.Suggestion
	for suggestion, err := range s.store.Suggestions.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list suggestions: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

// Approve marks a suggestion approved and adds the suggested book to
// the catalog. A title that already exists in the catalog still counts
// as approved.
func (s *SuggestionService) Approve(ctx context.Context, suggestionID string) (*domain.Suggestion, error) {
	suggestion, err := s.setStatus(ctx, suggestionID, domain.SuggestionApproved)
	if err != nil {
		return nil, err
	}

	if suggestion.Title == "" {
		// Enrichment never found a title; nothing to add.
		return suggestion, nil
	}

	_, err = s.catalog.Create(ctx, CreateBookRequest{
		Title:       suggestion.Title,
		Author:      suggestion.Author,
		ISBN:        suggestion.Identifier,
		Description: suggestion.Description,
		CoverURL:    suggestion.CoverURL,
		PageCount:   suggestion.PageCount,
	})
	if err != nil && !errors.Is(err, domainerrors.ErrAlreadyExists) {
		return nil, fmt.Errorf("add suggested book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Suggestion approved", "suggestion_id", suggestionID, "title", suggestion.Title)
	}

	return suggestion, nil
}

// Reject marks a suggestion rejected.
func (s *SuggestionService) Reject(ctx context.Context, suggestionID string) (*domain.Suggestion, error) {
	return s.setStatus(ctx, suggestionID, domain.SuggestionRejected)
}

func (s *SuggestionService) setStatus(ctx context.Context, suggestionID string, status domain.SuggestionStatus) (*domain.Suggestion, error) {
	var updated *domain.Suggestion
	err := s.store.Suggestions.Mutate(ctx, suggestionID, func(current *domain.Suggestion) (*domain.Suggestion, error) {
		if current == nil {
			return nil, domainerrors.NotFound("suggestion not found")
		}
		current.Status = status
		current.Touch()
		updated = current
		return current, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update suggestion: %w", err)
	}
	return updated, nil
}

// enrich fills empty suggestion fields from the Google Books API.
// Failures are logged and swallowed; the suggestion stands as filed.
func (s *SuggestionService) enrich(ctx context.Context, suggestionID, isbn string) {
	volume, err := s.metadata.FetchByISBN(ctx, isbn)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Suggestion enrichment failed",
				"suggestion_id", suggestionID,
				"isbn", isbn,
				"error", err,
			)
		}
		return
	}

	if err := s.applyVolume(ctx, suggestionID, volume); err != nil && s.logger != nil {
		s.logger.Warn("Failed to store enrichment result", "suggestion_id", suggestionID, "error", err)
	}
}

// applyVolume fills empty suggestion fields from a fetched volume.
// Fields the user already provided are never overwritten.
func (s *SuggestionService) applyVolume(ctx context.Context, suggestionID string, volume *googlebooks.Volume) error {
	return s.store.Suggestions.Mutate(ctx, suggestionID, func(current *domain.Suggestion) (*domain.Suggestion, error) {
		if current == nil {
			return nil, nil // Deleted before enrichment finished
		}
		if current.Title == "" {
			current.Title = volume.Title
		}
		if current.Author == "" {
			current.Author = volume.Author
		}
		if current.Description == "" {
			current.Description = volume.Description
		}
		if current.CoverURL == "" {
			current.CoverURL = volume.CoverURL
		}
		if current.PageCount == 0 {
			current.PageCount = volume.PageCount
		}
		current.Touch()
		return current, nil
	})
}
