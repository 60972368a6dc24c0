package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBook_Like_PairsCounterWithHistory(t *testing.T) {
	book := &Book{Syncable: Syncable{ID: "the-hobbit"}, Title: "The Hobbit"}
	at := time.Now()

	book.Like(at)

	assert.Equal(t, int64(1), book.Likes)
	assert.Equal(t, []time.Time{at}, book.LikesHistory)
}

func TestBook_UndoLike_RemovesLatestHistoryEntry(t *testing.T) {
	first := time.Now().Add(-time.Hour)
	second := time.Now()
	book := &Book{
		Syncable:     Syncable{ID: "dune"},
		Likes:        2,
		LikesHistory: []time.Time{first, second},
	}

	book.UndoLike()

	assert.Equal(t, int64(1), book.Likes)
	// LIFO: undo reverses the latest like, not a specific one.
	assert.Equal(t, []time.Time{first}, book.LikesHistory)
}

func TestBook_UndoLike_NeverGoesNegative(t *testing.T) {
	book := &Book{Syncable: Syncable{ID: "dune"}}

	book.UndoLike()

	assert.Equal(t, int64(0), book.Likes)
	assert.Empty(t, book.LikesHistory)
}

func TestBook_LikeThenUndo_RestoresInitialState(t *testing.T) {
	book := &Book{Syncable: Syncable{ID: "dune"}, Likes: 5, LikesHistory: make([]time.Time, 5)}

	book.Like(time.Now())
	book.UndoLike()

	assert.Equal(t, int64(5), book.Likes)
	assert.Len(t, book.LikesHistory, 5)
}

func TestBook_Dislike_AndUndo(t *testing.T) {
	book := &Book{Syncable: Syncable{ID: "dune"}}

	book.Dislike()
	assert.Equal(t, int64(1), book.Dislikes)

	book.UndoDislike()
	assert.Equal(t, int64(0), book.Dislikes)

	book.UndoDislike()
	assert.Equal(t, int64(0), book.Dislikes, "counter must not go negative")
}

func TestBook_LikesWithin_CountsInclusiveBounds(t *testing.T) {
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 23, 59, 59, 999000000, time.UTC)
	book := &Book{
		LikesHistory: []time.Time{
			from.Add(-time.Millisecond), // Before the window
			from,                        // Window start, inclusive
			from.Add(48 * time.Hour),
			to,                     // Window end, inclusive
			to.Add(time.Hour), // After the window
		},
	}

	assert.Equal(t, 3, book.LikesWithin(from, to))
}

func TestBook_Snapshot_ExcludesCounters(t *testing.T) {
	book := &Book{
		Syncable: Syncable{ID: "dune"},
		Title:    "Dune",
		Author:   "Frank Herbert",
		ISBN:     "9780441013593",
		Likes:    42,
	}

	snap := book.Snapshot()

	assert.Equal(t, "dune", snap.ID)
	assert.Equal(t, "Dune", snap.Title)
	assert.Equal(t, "Frank Herbert", snap.Author)
	assert.Equal(t, "9780441013593", snap.ISBN)
}
