package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), newTestLogger(), store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestReserved() *domain.ReservedBookTable {
	return domain.NewReservedBookTable([]domain.ReservedBook{
		{
			Slug:           "nutuk",
			ISBN:           "9789944888349",
			NoDislikes:     true,
			DislikeMessage: "This book is too valuable to criticize",
			InfiniteLikes:  true,
			NoEntries:      true,
			EntriesMessage: "This book speaks for itself",
		},
	})
}

func createTestUser(t *testing.T, s *store.Store, userID, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:    username + "@example.com",
		Username: username,
		Role:     domain.RoleMember,
	}
	user.ID = userID
	user.InitTimestamps()

	require.NoError(t, s.Users.Create(context.Background(), userID, user))
	return user
}

func createTestBook(t *testing.T, s *store.Store, slug, title string, likes int64, likedAt ...time.Time) *domain.Book {
	t.Helper()

	book := &domain.Book{
		Title: title,
		Likes: likes,
	}
	book.ID = slug
	book.LikesHistory = likedAt
	book.InitTimestamps()

	require.NoError(t, s.Books.Create(context.Background(), slug, book))
	return book
}
