// Package sse implements Server-Sent Events for live engagement updates and event broadcasting.
package sse

import (
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

// SSE replaces the live push-subscription contract the mobile client
// expects: per-book counters, rankings, and per-user feed state are
// pushed for as long as the connection is open. Everything else is
// plain request/response.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventBookEngagement carries a book's updated like/dislike counters.
	EventBookEngagement EventType = "book.engagement"
	// EventBookCreated represents a catalog addition.
	EventBookCreated EventType = "book.created"
	// EventBookDeleted represents a catalog removal.
	EventBookDeleted EventType = "book.deleted"

	// EventFeedPosition carries a user's persisted feed index.
	// Always user-filtered.
	EventFeedPosition EventType = "feed.position"

	// EventRankingsInvalidated tells clients the top-books lists changed.
	// Clients refetch rather than receive the full list inline.
	EventRankingsInvalidated EventType = "rankings.invalidated"

	// EventFavoritesUpdated carries a user's favorite list after a mutation.
	// Always user-filtered.
	EventFavoritesUpdated EventType = "favorites.updated"

	// EventEntryAdded, EventEntryUpdated, and EventEntryDeleted announce
	// comment/quote changes on a book's detail page.
	EventEntryAdded   EventType = "entry.added"
	EventEntryUpdated EventType = "entry.updated"
	EventEntryDeleted EventType = "entry.deleted"

	// EventReportCreated announces a new entry report. Admin-only.
	EventReportCreated EventType = "report.created"
	// EventSuggestionCreated announces a new book suggestion. Admin-only.
	EventSuggestionCreated EventType = "suggestion.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`

	// UserID filters delivery to a specific user when set.
	// Empty string means "broadcast to all". Not sent to clients.
	UserID string `json:"-"`
}

// BookEngagementData is the data payload for counter events.
// Self-contained so clients can render without a follow-up fetch.
type BookEngagementData struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

// BookEventData is the data payload for catalog events.
type BookEventData struct {
	Book *domain.Book `json:"book"`
}

// FeedPositionData is the data payload for feed position events.
type FeedPositionData struct {
	Index int `json:"index"`
}

// FavoritesData is the data payload for favorites events.
type FavoritesData struct {
	Books []domain.BookSnapshot `json:"books"`
}

// EntryEventData is the data payload for entry events.
type EntryEventData struct {
	BookSlug string           `json:"book_slug"`
	Kind     domain.EntryKind `json:"kind"`
	Entry    domain.Entry     `json:"entry"`
}

// ReportEventData is the data payload for report events.
type ReportEventData struct {
	Report *domain.Report `json:"report"`
}

// SuggestionEventData is the data payload for suggestion events.
type SuggestionEventData struct {
	Suggestion *domain.Suggestion `json:"suggestion"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewBookEngagementEvent creates a counter broadcast for a book.
func NewBookEngagementEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookEngagement,
		Timestamp: time.Now(),
		Data: BookEngagementData{
			BookID:   book.ID,
			Title:    book.Title,
			Likes:    book.Likes,
			Dislikes: book.Dislikes,
		},
	}
}

// NewBookCreatedEvent creates a catalog addition event.
func NewBookCreatedEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookCreated,
		Timestamp: time.Now(),
		Data:      BookEventData{Book: book},
	}
}

// NewBookDeletedEvent creates a catalog removal event.
func NewBookDeletedEvent(bookID string) Event {
	return Event{
		Type:      EventBookDeleted,
		Timestamp: time.Now(),
		Data:      map[string]string{"book_id": bookID},
	}
}

// NewFeedPositionEvent creates a user-filtered feed position event.
func NewFeedPositionEvent(userID string, index int) Event {
	return Event{
		Type:      EventFeedPosition,
		Timestamp: time.Now(),
		Data:      FeedPositionData{Index: index},
		UserID:    userID,
	}
}

// NewRankingsInvalidatedEvent signals that the top-books lists changed.
func NewRankingsInvalidatedEvent() Event {
	return Event{
		Type:      EventRankingsInvalidated,
		Timestamp: time.Now(),
	}
}

// NewFavoritesUpdatedEvent creates a user-filtered favorites event.
func NewFavoritesUpdatedEvent(userID string, books []domain.BookSnapshot) Event {
	return Event{
		Type:      EventFavoritesUpdated,
		Timestamp: time.Now(),
		Data:      FavoritesData{Books: books},
		UserID:    userID,
	}
}

// NewEntryEvent creates an entry change event of the given type.
func NewEntryEvent(eventType EventType, slug string, kind domain.EntryKind, entry domain.Entry) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data: EntryEventData{
			BookSlug: slug,
			Kind:     kind,
			Entry:    entry,
		},
	}
}

// NewReportCreatedEvent creates an admin-only report event.
func NewReportCreatedEvent(report *domain.Report) Event {
	return Event{
		Type:      EventReportCreated,
		Timestamp: time.Now(),
		Data:      ReportEventData{Report: report},
	}
}

// NewSuggestionCreatedEvent creates an admin-only suggestion event.
func NewSuggestionCreatedEvent(suggestion *domain.Suggestion) Event {
	return Event{
		Type:      EventSuggestionCreated,
		Timestamp: time.Now(),
		Data:      SuggestionEventData{Suggestion: suggestion},
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}
