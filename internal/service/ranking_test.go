package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingService_TopWeekly_CountsOnlyThisWeek(t *testing.T) {
	s := newTestStore(t)
	svc := NewRankingService(s, newTestReserved(), newTestLogger())

	now := time.Now().UTC()
	lastMonth := now.AddDate(0, -1, 0)

	// Two likes this week, one long ago.
	createTestBook(t, s, "dune", "Dune", 3, now, now, lastMonth)
	// Popular all-time but silent this week.
	createTestBook(t, s, "hyperion", "Hyperion", 50, lastMonth)

	ranked, err := svc.TopWeekly(context.Background())
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "dune", ranked[0].Book.ID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[0].Score)
	assert.Equal(t, int64(3), ranked[0].Likes)
}

func TestRankingService_TopAllTime_OrdersByTotalLikes(t *testing.T) {
	s := newTestStore(t)
	svc := NewRankingService(s, newTestReserved(), newTestLogger())

	createTestBook(t, s, "dune", "Dune", 3)
	createTestBook(t, s, "hyperion", "Hyperion", 50)
	createTestBook(t, s, "unloved", "Unloved", 0)

	ranked, err := svc.TopAllTime(context.Background())
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "hyperion", ranked[0].Book.ID)
	assert.Equal(t, "dune", ranked[1].Book.ID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankingService_MarksReservedBooksInfinite(t *testing.T) {
	s := newTestStore(t)
	svc := NewRankingService(s, newTestReserved(), newTestLogger())

	createTestBook(t, s, "nutuk", "Nutuk", 7)
	createTestBook(t, s, "dune", "Dune", 3)

	ranked, err := svc.TopAllTime(context.Background())
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Infinite)
	assert.False(t, ranked[1].Infinite)
}

func TestRankingService_EmptyCatalog(t *testing.T) {
	svc := NewRankingService(newTestStore(t), newTestReserved(), newTestLogger())

	ranked, err := svc.TopWeekly(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
