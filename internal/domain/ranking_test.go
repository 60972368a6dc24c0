package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekWindow_MidWeek(t *testing.T) {
	// Saturday 2026-08-29 -> window is Monday the 24th through Sunday the 30th.
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

	from, to := WeekWindow(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 30, 23, 59, 59, 999000000, time.UTC), to)
}

func TestWeekWindow_OnMonday(t *testing.T) {
	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	from, _ := WeekWindow(now)

	assert.Equal(t, now, from)
}

func TestWeekWindow_OnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	from, to := WeekWindow(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 30, 23, 59, 59, 999000000, time.UTC), to)
}

func TestWeekWindow_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// Monday 01:30 local time is still Sunday in UTC.
	now := time.Date(2026, 8, 31, 1, 30, 0, 0, loc)

	from, _ := WeekWindow(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), from)
}

func TestTopWeekly_RanksByWindowedLikes(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	inWindow := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	books := []*Book{
		{Syncable: Syncable{ID: "once-hot"}, Likes: 100, LikesHistory: []time.Time{lastMonth, lastMonth}},
		{Syncable: Syncable{ID: "rising"}, Likes: 3, LikesHistory: []time.Time{inWindow, inWindow, inWindow}},
		{Syncable: Syncable{ID: "steady"}, Likes: 10, LikesHistory: []time.Time{lastMonth, inWindow}},
	}

	ranked := TopWeekly(books, now)

	// "once-hot" has no likes this week and drops out entirely.
	require.Len(t, ranked, 2)
	assert.Equal(t, "rising", ranked[0].Book.ID)
	assert.Equal(t, 3, ranked[0].Score)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "steady", ranked[1].Book.ID)
	assert.Equal(t, 1, ranked[1].Score)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestTopWeekly_CapsAtLimit(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	inWindow := now.Add(-time.Hour)

	var books []*Book
	for i := 0; i < TopBooksLimit+5; i++ {
		books = append(books, &Book{
			Syncable:     Syncable{ID: fmt.Sprintf("book-%d", i)},
			Likes:        1,
			LikesHistory: []time.Time{inWindow},
		})
	}

	assert.Len(t, TopWeekly(books, now), TopBooksLimit)
}

func TestTopAllTime_ExcludesUnliked(t *testing.T) {
	books := []*Book{
		{Syncable: Syncable{ID: "popular"}, Likes: 9},
		{Syncable: Syncable{ID: "unloved"}, Likes: 0},
		{Syncable: Syncable{ID: "classic"}, Likes: 14},
	}

	ranked := TopAllTime(books)

	require.Len(t, ranked, 2)
	assert.Equal(t, "classic", ranked[0].Book.ID)
	assert.Equal(t, "popular", ranked[1].Book.ID)
}

func TestTopAllTime_StableOnTies(t *testing.T) {
	books := []*Book{
		{Syncable: Syncable{ID: "first"}, Likes: 5},
		{Syncable: Syncable{ID: "second"}, Likes: 5},
	}

	ranked := TopAllTime(books)

	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Book.ID, "ties keep store order")
}

func TestNewReservedBookTable_LookupBySlugAndISBN(t *testing.T) {
	table := NewReservedBookTable([]ReservedBook{
		{Slug: "nutuk", ISBN: "9789944888349", NoDislikes: true, InfiniteLikes: true, NoEntries: true},
	})

	require.NotNil(t, table.BySlug("nutuk"))
	require.NotNil(t, table.ByISBN("9789944888349"))
	assert.Same(t, table.BySlug("nutuk"), table.ByISBN("9789944888349"))
	assert.Nil(t, table.BySlug("dune"))
	assert.Nil(t, table.ByISBN("0000000000000"))
}
