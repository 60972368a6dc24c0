package domain

import (
	"time"
)

// EntryKind partitions per-book entries into two independent collections.
type EntryKind string

const (
	EntryKindComment EntryKind = "comments"
	EntryKindQuote   EntryKind = "quotes"
)

// Valid checks if the kind is one of the two known collections.
func (k EntryKind) Valid() bool {
	return k == EntryKindComment || k == EntryKindQuote
}

// Entry is a comment or quote attached to a book by a user.
// Username is a display-name snapshot taken at creation time.
type Entry struct {
	ID        string    `json:"id"` // Random v4 identifier
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Edited    bool      `json:"edited,omitempty"`
}

// BookEntries is the per-book entry document, keyed by "kind/slug".
// Entries are stored oldest first; readers take the tail.
type BookEntries struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"` // kind + "/" + book slug
	BookSlug  string    `json:"book_slug"`
	Kind      EntryKind `json:"kind"`
	Entries   []Entry   `json:"entries"`
}

// EntriesDocID builds the storage key for a book's entry document.
func EntriesDocID(kind EntryKind, slug string) string {
	return string(kind) + "/" + slug
}

// Append adds an entry to the end of the list.
func (d *BookEntries) Append(e Entry) {
	d.Entries = append(d.Entries, e)
	d.UpdatedAt = time.Now()
}

// Replace rewrites the whole array, substituting the entry with a
// matching ID with new text and the edited flag set. Full-array
// rewrite: concurrent edits race at array-replace granularity.
// Returns false if no entry matched.
func (d *BookEntries) Replace(entryID, newText string) bool {
	for i := range d.Entries {
		if d.Entries[i].ID == entryID {
			d.Entries[i].Text = newText
			d.Entries[i].Edited = true
			d.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Remove deletes the entry with the matching ID.
// Returns the removed entry and true, or the zero entry and false.
func (d *BookEntries) Remove(entryID string) (Entry, bool) {
	for i := range d.Entries {
		if d.Entries[i].ID == entryID {
			removed := d.Entries[i]
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			d.UpdatedAt = time.Now()
			return removed, true
		}
	}
	return Entry{}, false
}

// Find returns the entry with the given ID.
func (d *BookEntries) Find(entryID string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return Entry{}, false
}

// Tail returns the last n entries, oldest first. Readers show the most
// recent slice of the conversation, not the whole history.
func (d *BookEntries) Tail(n int) []Entry {
	if len(d.Entries) <= n {
		return d.Entries
	}
	return d.Entries[len(d.Entries)-n:]
}
