package domain

// SuggestionStatus tracks what happened to a suggested book.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// Suggestion is created when a lookup misses and the user proposes the
// book for the catalog. Identifier carries the failed lookup forward as
// a pre-filled hint. Metadata fields are filled best-effort by the
// enrichment step and may stay empty.
type Suggestion struct {
	Syncable
	UserID      string           `json:"user_id"`
	Identifier  string           `json:"identifier,omitempty"` // ISBN that failed to resolve
	Title       string           `json:"title"`
	Author      string           `json:"author,omitempty"`
	Description string           `json:"description,omitempty"` // Markdown
	CoverURL    string           `json:"cover_url,omitempty"`
	PageCount   int              `json:"page_count,omitempty"`
	Status      SuggestionStatus `json:"status"`
}
