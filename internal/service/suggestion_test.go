package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/metadata/googlebooks"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// newSuggestionFixture wires a suggestion service with no metadata
// client, so enrichment stays off and tests are hermetic.
func newSuggestionFixture(t *testing.T) (*SuggestionService, *store.Store) {
	t.Helper()

	s := newTestStore(t)
	catalog := NewCatalogService(s, nil, nil, nil, newTestLogger())
	return NewSuggestionService(s, catalog, nil, nil, newTestLogger()), s
}

func TestSuggestionService_Create_Pending(t *testing.T) {
	svc, _ := newSuggestionFixture(t)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{
		Identifier: "9780441013593",
		Title:      "Dune",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, suggestion.ID)
	assert.Equal(t, domain.SuggestionPending, suggestion.Status)
	assert.Equal(t, "9780441013593", suggestion.Identifier)
}

func TestSuggestionService_Create_RequiresTitleOrIdentifier(t *testing.T) {
	svc, _ := newSuggestionFixture(t)

	_, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{Author: "Someone"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// An identifier alone is enough; enrichment may fill the rest later.
	_, err = svc.Create(context.Background(), "user-1", CreateSuggestionRequest{Identifier: "9780441013593"})
	assert.NoError(t, err)
}

func TestSuggestionService_Create_WithoutUser_Unauthorized(t *testing.T) {
	svc, _ := newSuggestionFixture(t)

	_, err := svc.Create(context.Background(), "", CreateSuggestionRequest{Title: "Dune"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestSuggestionService_Approve_AddsBookToCatalog(t *testing.T) {
	svc, s := newSuggestionFixture(t)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionApproved, approved.Status)

	book, err := s.Books.Get(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", book.Author)
}

func TestSuggestionService_Approve_ExistingBookStillApproves(t *testing.T) {
	svc, s := newSuggestionFixture(t)

	createTestBook(t, s, "dune", "Dune", 5)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{Title: "Dune"})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionApproved, approved.Status)

	// The existing book keeps its counters.
	book, err := s.Books.Get(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, int64(5), book.Likes)
}

func TestSuggestionService_Reject(t *testing.T) {
	svc, s := newSuggestionFixture(t)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{Title: "Dune"})
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionRejected, rejected.Status)

	// Rejection never touches the catalog.
	_, err = s.Books.Get(context.Background(), "dune")
	assert.Error(t, err)
}

func TestSuggestionService_Approve_Unknown_NotFound(t *testing.T) {
	svc, _ := newSuggestionFixture(t)

	_, err := svc.Approve(context.Background(), "sug_missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestSuggestionService_List(t *testing.T) {
	svc, _ := newSuggestionFixture(t)

	_, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{Title: "Dune"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", CreateSuggestionRequest{Title: "Hyperion"})
	require.NoError(t, err)

	suggestions, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestSuggestionService_Enrichment_FillsDescription(t *testing.T) {
	svc, s := newSuggestionFixture(t)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{
		Identifier: "9780441013593",
		Title:      "Dune",
	})
	require.NoError(t, err)

	err = svc.applyVolume(context.Background(), suggestion.ID, &googlebooks.Volume{
		Title:       "Dune (Deluxe Edition)",
		Author:      "Frank Herbert",
		Description: "A **bold** description.",
		CoverURL:    "https://books.google.com/dune.jpg",
		PageCount:   412,
	})
	require.NoError(t, err)

	enriched, err := s.Suggestions.Get(context.Background(), suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, "A **bold** description.", enriched.Description)
	assert.Equal(t, "Frank Herbert", enriched.Author)
	// The user's own title wins over the fetched one.
	assert.Equal(t, "Dune", enriched.Title)
}

func TestSuggestionService_Approve_CarriesEnrichedMetadata(t *testing.T) {
	svc, s := newSuggestionFixture(t)

	suggestion, err := svc.Create(context.Background(), "user-1", CreateSuggestionRequest{
		Identifier: "9780441013593",
		Title:      "Dune",
	})
	require.NoError(t, err)

	err = svc.applyVolume(context.Background(), suggestion.ID, &googlebooks.Volume{
		Author:      "Frank Herbert",
		Description: "A **bold** description.",
		PageCount:   412,
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), suggestion.ID)
	require.NoError(t, err)

	book, err := s.Books.Get(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, "A **bold** description.", book.Description)
	assert.Equal(t, 412, book.PageCount)
}
