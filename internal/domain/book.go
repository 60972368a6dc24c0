// Package domain contains the core business entities and domain logic for the BookSwipe feed.
package domain

import (
	"time"
)

// Book represents a title in the swipe feed. Books are keyed by a slug
// derived from the title, so the same title always lands on the same
// aggregate document regardless of which client first engaged with it.
type Book struct {
	Syncable
	Title         string      `json:"title"`
	Author        string      `json:"author,omitempty"`
	CoverURL      string      `json:"cover_url,omitempty"`
	CoverBlurHash string      `json:"cover_blur_hash,omitempty"`
	Description   string      `json:"description,omitempty"`
	ISBN          string      `json:"isbn,omitempty"`
	PageCount     int         `json:"page_count,omitempty"`
	PublishedDate string      `json:"published_date,omitempty"`
	Likes         int64       `json:"likes"`
	Dislikes      int64       `json:"dislikes"`
	LikesHistory  []time.Time `json:"likes_history,omitempty"`
}

// Like increments the like counter and appends a history timestamp.
// The counter and the history entry always move together.
func (b *Book) Like(at time.Time) {
	b.Likes++
	b.LikesHistory = append(b.LikesHistory, at)
	b.Touch()
}

// UndoLike decrements the like counter and removes the most recently
// appended history timestamp. Undo reverses the latest like, not a
// specific one. Counters never go below zero.
func (b *Book) UndoLike() {
	if b.Likes > 0 {
		b.Likes--
	}
	if n := len(b.LikesHistory); n > 0 {
		b.LikesHistory = b.LikesHistory[:n-1]
	}
	b.Touch()
}

// Dislike increments the dislike counter.
func (b *Book) Dislike() {
	b.Dislikes++
	b.Touch()
}

// UndoDislike decrements the dislike counter, never below zero.
func (b *Book) UndoDislike() {
	if b.Dislikes > 0 {
		b.Dislikes--
	}
	b.Touch()
}

// LikesWithin counts history timestamps inside [from, to].
func (b *Book) LikesWithin(from, to time.Time) int {
	count := 0
	for _, ts := range b.LikesHistory {
		if !ts.Before(from) && !ts.After(to) {
			count++
		}
	}
	return count
}

// Snapshot returns the denormalized copy of the book stored in favorite
// lists and suggestion records. Snapshots freeze the fields at the time
// of favoriting and deliberately exclude counters.
func (b *Book) Snapshot() BookSnapshot {
	return BookSnapshot{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		CoverURL: b.CoverURL,
		ISBN:     b.ISBN,
	}
}

// BookSnapshot is a denormalized copy of Book identity fields.
type BookSnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
}
