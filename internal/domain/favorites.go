package domain

import (
	"slices"
	"time"
)

// MaxFavorites is the fixed upper bound on a user's favorite list.
const MaxFavorites = 15

// FavoriteResult is the outcome of an add-favorite attempt.
type FavoriteResult int

const (
	FavoriteAdded FavoriteResult = iota
	FavoriteAlreadyPresent
	FavoriteLimitReached
)

// Favorites is a per-user ordered list of denormalized book snapshots,
// newest first. Owned exclusively by the user; capped at MaxFavorites.
type Favorites struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ID        string         `json:"id"` // Keyed by owner user ID
	OwnerID   string         `json:"owner_id"`
	Books     []BookSnapshot `json:"books"`
}

// Add appends a snapshot, prepending to keep newest-first ordering.
// Duplicates (compared by book ID) and additions past the cap are
// rejected without mutating the list.
func (f *Favorites) Add(snapshot BookSnapshot) FavoriteResult {
	if f.Contains(snapshot.ID) {
		return FavoriteAlreadyPresent
	}
	if len(f.Books) >= MaxFavorites {
		return FavoriteLimitReached
	}
	f.Books = append([]BookSnapshot{snapshot}, f.Books...)
	f.UpdatedAt = time.Now()
	return FavoriteAdded
}

// Remove deletes the snapshot with the given book ID.
// Returns false if the book was not present.
func (f *Favorites) Remove(bookID string) bool {
	i := slices.IndexFunc(f.Books, func(b BookSnapshot) bool { return b.ID == bookID })
	if i < 0 {
		return false
	}
	f.Books = append(f.Books[:i], f.Books[i+1:]...)
	f.UpdatedAt = time.Now()
	return true
}

// Clear removes every favorite. Unconditional once invoked.
func (f *Favorites) Clear() {
	f.Books = nil
	f.UpdatedAt = time.Now()
}

// Contains checks if a book ID is in the list.
func (f *Favorites) Contains(bookID string) bool {
	return slices.ContainsFunc(f.Books, func(b BookSnapshot) bool { return b.ID == bookID })
}
