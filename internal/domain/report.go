package domain

import (
	"slices"
	"time"
)

// ReportReasons is the fixed set of reasons a user can pick when
// flagging an entry. Free-form reasons are not accepted.
var ReportReasons = []string{
	"Spam or irrelevant content",
	"Hate speech or offensive language",
	"Misleading information",
	"Harassment or bullying",
	"Other",
}

// ValidReportReason checks reason membership in the fixed list.
func ValidReportReason(reason string) bool {
	return slices.Contains(ReportReasons, reason)
}

// Report is a write-once record produced when a user flags an entry.
// It snapshots the entry at report time and is never mutated afterwards;
// the reported entry itself is left untouched.
type Report struct {
	ID         string    `json:"id"`
	Kind       EntryKind `json:"kind"`
	EntryID    string    `json:"entry_id"`
	EntryText  string    `json:"entry_text"`
	AuthorName string    `json:"author_name"` // Username of the entry's author
	BookSlug   string    `json:"book_slug"`
	BookTitle  string    `json:"book_title"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
