package domain

import "iter"

// ReservedBook declares the exemption rules for a specially curated
// title. The exemptions are centrally declared here instead of inline
// conditionals scattered across services, so each behavior can be
// tested in isolation.
type ReservedBook struct {
	Slug  string `json:"slug"`
	ISBN  string `json:"isbn"`
	Title string `json:"title,omitempty"`

	// NoDislikes short-circuits dislike attempts with DislikeMessage
	// and no mutation.
	NoDislikes     bool   `json:"no_dislikes"`
	DislikeMessage string `json:"dislike_message"`

	// InfiniteLikes makes clients render the like counter as unbounded.
	InfiniteLikes bool `json:"infinite_likes"`

	// NoEntries rejects comment/quote additions with EntriesMessage.
	NoEntries      bool   `json:"no_entries"`
	EntriesMessage string `json:"entries_message"`
}

// ReservedBookTable maps both slug and ISBN to the owning rule so
// engagement (slug-keyed) and lookup (ISBN-keyed) share one source.
type ReservedBookTable struct {
	books  []ReservedBook
	bySlug map[string]*ReservedBook
	byISBN map[string]*ReservedBook
}

// NewReservedBookTable builds the lookup table.
func NewReservedBookTable(books []ReservedBook) *ReservedBookTable {
	t := &ReservedBookTable{
		books:  books,
		bySlug: make(map[string]*ReservedBook, len(books)),
		byISBN: make(map[string]*ReservedBook, len(books)),
	}
	for i := range t.books {
		b := &t.books[i]
		if b.Slug != "" {
			t.bySlug[b.Slug] = b
		}
		if b.ISBN != "" {
			t.byISBN[b.ISBN] = b
		}
	}
	return t
}

// BySlug returns the rule for a book slug, or nil.
func (t *ReservedBookTable) BySlug(slug string) *ReservedBook {
	return t.bySlug[slug]
}

// ByISBN returns the rule for an ISBN, or nil.
func (t *ReservedBookTable) ByISBN(isbn string) *ReservedBook {
	return t.byISBN[isbn]
}

// All iterates over every reserved book rule in declaration order.
func (t *ReservedBookTable) All() iter.Seq[*ReservedBook] {
	return func(yield func(*ReservedBook) bool) {
		for i := range t.books {
			if !yield(&t.books[i]) {
				return
			}
		}
	}
}
