package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/search"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *store.Store) {
	t.Helper()

	s := newTestStore(t)
	idx, err := search.New(search.Options{DataPath: t.TempDir(), Logger: newTestLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	return NewCatalogService(s, idx, nil, nil, newTestLogger()), s
}

func TestCatalogService_Create_DerivesSlugFromTitle(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	book, err := svc.Create(context.Background(), CreateBookRequest{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
	})
	require.NoError(t, err)

	assert.Equal(t, "the-left-hand-of-darkness", book.ID)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestCatalogService_Create_DuplicateTitle_Conflict(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.Create(context.Background(), CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateBookRequest{Title: "Dune"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestCatalogService_Create_MissingTitle_Validation(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.Create(context.Background(), CreateBookRequest{Author: "Anonymous"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestCatalogService_Get_FallsBackToReserved(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	reserved := &domain.Book{Title: "Nutuk", ISBN: "9789944888349"}
	require.NoError(t, svc.EnsureReserved(context.Background(), reserved))

	book, err := svc.Get(context.Background(), "nutuk")
	require.NoError(t, err)
	assert.Equal(t, "Nutuk", book.Title)

	_, err = svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestCatalogService_Delete_IsIdempotent(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.Create(context.Background(), CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "dune"))
	require.NoError(t, svc.Delete(context.Background(), "dune"))

	_, err = svc.Get(context.Background(), "dune")
	assert.Error(t, err)
}

func TestCatalogService_Search_FindsCreatedBooks(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.Create(context.Background(), CreateBookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateBookRequest{Title: "Hyperion", Author: "Dan Simmons"})
	require.NoError(t, err)

	books, err := svc.Search(context.Background(), "dune", 10)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestCatalogService_Search_SkipsDeletedBooks(t *testing.T) {
	svc, s := newCatalogFixture(t)

	_, err := svc.Create(context.Background(), CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)

	// Remove from the store behind the index's back.
	require.NoError(t, s.Books.Delete(context.Background(), "dune"))

	books, err := svc.Search(context.Background(), "dune", 10)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCatalogService_EnsureReserved_FillsSlugAndTimestamps(t *testing.T) {
	svc, s := newCatalogFixture(t)

	require.NoError(t, svc.EnsureReserved(context.Background(), &domain.Book{Title: "Nutuk"}))

	book, err := s.ReservedBooks.Get(context.Background(), "nutuk")
	require.NoError(t, err)
	assert.Equal(t, "nutuk", book.ID)
	assert.False(t, book.CreatedAt.IsZero())

	// Upsert semantics: seeding again is not an error.
	require.NoError(t, svc.EnsureReserved(context.Background(), &domain.Book{Title: "Nutuk"}))
}

func TestCatalogService_RebuildSearchIndex(t *testing.T) {
	svc, s := newCatalogFixture(t)

	createTestBook(t, s, "dune", "Dune", 0)
	createTestBook(t, s, "hyperion", "Hyperion", 0)

	count, err := svc.RebuildSearchIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
