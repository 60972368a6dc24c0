package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
)

// newEngagementFixture returns a service whose guard clock is frozen at
// a controllable instant, so tests can hop over the cooldown window.
func newEngagementFixture(t *testing.T) (*EngagementService, *time.Time) {
	t.Helper()

	s := newTestStore(t)
	svc := NewEngagementService(s, nil, newTestReserved(), newTestLogger())

	current := time.Now()
	svc.guard.now = func() time.Time { return current }
	return svc, &current
}

func TestEngagementService_Like_CreatesBookLazily(t *testing.T) {
	svc, _ := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	book, err := svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	assert.Equal(t, "dune", book.ID)
	assert.Equal(t, int64(1), book.Likes)
	assert.Len(t, book.LikesHistory, 1)

	state, err := svc.State(context.Background(), "user-1", "Dune")
	require.NoError(t, err)
	assert.Equal(t, domain.EngagementLiked, state)
}

func TestEngagementService_Like_Twice_Rejected(t *testing.T) {
	svc, clock := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.NoError(t, err)

	*clock = clock.Add(engagementCooldown + time.Second)
	_, err = svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRejected))

	// The counter must not have moved.
	book, err := svc.store.Books.Get(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.Likes)
}

func TestEngagementService_Dislike_AfterLike_Rejected(t *testing.T) {
	svc, clock := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.NoError(t, err)

	*clock = clock.Add(engagementCooldown + time.Second)
	_, err = svc.Dislike(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRejected))
	assert.Contains(t, err.Error(), "undo it first")
}

func TestEngagementService_Dislike_ReservedBook_Rejected(t *testing.T) {
	svc, _ := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Dislike(context.Background(), "user-1", BookSeed{Title: "Nutuk"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRejected))
	assert.Contains(t, err.Error(), "too valuable to criticize")

	// Reserved rejections happen before any write.
	_, err = svc.store.Books.Get(context.Background(), "nutuk")
	assert.Error(t, err)
}

func TestEngagementService_Undo_ReversesLike(t *testing.T) {
	svc, clock := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.NoError(t, err)

	*clock = clock.Add(engagementCooldown + time.Second)
	book, err := svc.Undo(context.Background(), "user-1", "Dune")
	require.NoError(t, err)

	assert.Equal(t, int64(0), book.Likes)
	assert.Empty(t, book.LikesHistory)

	state, err := svc.State(context.Background(), "user-1", "Dune")
	require.NoError(t, err)
	assert.Equal(t, domain.EngagementNone, state)
}

func TestEngagementService_Undo_NothingToUndo_Rejected(t *testing.T) {
	svc, _ := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Undo(context.Background(), "user-1", "Dune")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRejected))
}

func TestEngagementService_Like_WithoutUser_Unauthorized(t *testing.T) {
	svc, _ := newEngagementFixture(t)

	_, err := svc.Like(context.Background(), "", BookSeed{Title: "Dune"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestEngagementService_Like_MissingTitle_Validation(t *testing.T) {
	svc, _ := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Like(context.Background(), "user-1", BookSeed{})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestEngagementService_CooldownBlocksRapidSecondAction(t *testing.T) {
	svc, clock := newEngagementFixture(t)
	createTestUser(t, svc.store, "user-1", "alice")

	_, err := svc.Like(context.Background(), "user-1", BookSeed{Title: "Dune"})
	require.NoError(t, err)

	// Inside the cooldown window the guard refuses, it does not queue.
	_, err = svc.Undo(context.Background(), "user-1", "Dune")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRejected))
	assert.Contains(t, err.Error(), "still settling")

	// A different book is an independent key.
	_, err = svc.Like(context.Background(), "user-1", BookSeed{Title: "Hyperion"})
	assert.NoError(t, err)

	// Once the window passes the same key works again.
	*clock = clock.Add(engagementCooldown + time.Second)
	_, err = svc.Undo(context.Background(), "user-1", "Dune")
	assert.NoError(t, err)
}

func TestActionGuard_BeginFailsWhileInFlight(t *testing.T) {
	g := newActionGuard(time.Second)

	require.True(t, g.begin("k"))
	assert.False(t, g.begin("k"))

	g.end("k")
	// Still inside the cooldown.
	assert.False(t, g.begin("k"))

	g.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	assert.True(t, g.begin("k"))
}

func TestActionGuard_EndSweepsExpiredCooldowns(t *testing.T) {
	g := newActionGuard(time.Second)
	base := time.Now()
	g.now = func() time.Time { return base }

	// Keys visited once must not linger past their window.
	for _, key := range []string{"a", "b", "c"} {
		require.True(t, g.begin(key))
		g.end(key)
	}
	assert.Len(t, g.cooldown, 3)

	base = base.Add(2 * time.Second)
	require.True(t, g.begin("d"))
	g.end("d")

	assert.Len(t, g.cooldown, 1)
	_, ok := g.cooldown["d"]
	assert.True(t, ok)
}
