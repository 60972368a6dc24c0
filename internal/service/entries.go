package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/id"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// EntryDisplayLimit is how many entries per collection a read returns.
// Older entries stay in the document but are not served.
const EntryDisplayLimit = 10

// EntryService manages the comment and quote collections attached to
// each book, plus entry reports.
type EntryService struct {
	store    *store.Store
	emitter  store.EventEmitter
	reserved *domain.ReservedBookTable
	logger   *slog.Logger
}

// NewEntryService creates a new entry service.
func NewEntryService(
	s *store.Store,
	emitter store.EventEmitter,
	reserved *domain.ReservedBookTable,
	logger *slog.Logger,
) *EntryService {
	return &EntryService{
		store:    s,
		emitter:  emitter,
		reserved: reserved,
		logger:   logger,
	}
}

// Add appends a new entry to the book's collection of the given kind.
// The entry snapshots the author's display name at creation time; the
// per-book document is created on first write.
func (s *EntryService) Add(ctx context.Context, kind domain.EntryKind, userID, slug, text string) (*domain.Entry, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown entry kind %q", string(kind))
	}
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to write about books")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.Validation("entry text cannot be empty")
	}
	if rule := s.reserved.BySlug(slug); rule != nil && rule.NoEntries {
		return nil, domainerrors.Rejected(rule.EntriesMessage)
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	entry := domain.Entry{
		ID:        id.NewEntryID(),
		UserID:    userID,
		Username:  user.Name(),
		Text:      text,
		CreatedAt: time.Now(),
	}

	docID := domain.EntriesDocID(kind, slug)
	err = s.store.Entries.Mutate(ctx, docID, func(current *domain.BookEntries) (*domain.BookEntries, error) {
		doc := current
		if doc == nil {
			doc = newEntriesDoc(kind, slug)
		}
		doc.Append(entry)
		return doc, nil
	})
	if err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	s.emitEntry(sse.EventEntryAdded, slug, kind, entry)

	if s.logger != nil {
		s.logger.Info("Entry added", "book_id", slug, "kind", string(kind), "entry_id", entry.ID)
	}

	return &entry, nil
}

// Edit replaces the text of the caller's own entry and marks it edited.
// The whole entry array is rewritten; last write wins between racing
// edits of different entries in the same document.
func (s *EntryService) Edit(ctx context.Context, kind domain.EntryKind, userID, slug, entryID, newText string) (*domain.Entry, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown entry kind %q", string(kind))
	}
	if userID == "" {
		return nil, domainerrors.Unauthorized("sign in to write about books")
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, domainerrors.Validation("entry text cannot be empty")
	}

	var edited domain.Entry
	docID := domain.EntriesDocID(kind, slug)
	err := s.store.Entries.Mutate(ctx, docID, func(current *domain.BookEntries) (*domain.BookEntries, error) {
		if current == nil {
			return nil, domainerrors.NotFound("entry not found")
		}
		existing, ok := current.Find(entryID)
		if !ok {
			return nil, domainerrors.NotFound("entry not found")
		}
		if existing.UserID != userID {
			return nil, domainerrors.Forbidden("you can only edit your own entries")
		}
		current.Replace(entryID, newText)
		edited, _ = current.Find(entryID)
		return current, nil
	})
	if err != nil {
		return nil, fmt.Errorf("edit entry: %w", err)
	}

	s.emitEntry(sse.EventEntryUpdated, slug, kind, edited)
	return &edited, nil
}

// Delete removes the caller's own entry from the collection.
func (s *EntryService) Delete(ctx context.Context, kind domain.EntryKind, userID, slug, entryID string) error {
	if !kind.Valid() {
		return domainerrors.Validationf("unknown entry kind %q", string(kind))
	}
	if userID == "" {
		return domainerrors.Unauthorized("sign in to write about books")
	}

	var removed domain.Entry
	docID := domain.EntriesDocID(kind, slug)
	err := s.store.Entries.Mutate(ctx, docID, func(current *domain.BookEntries) (*domain.BookEntries, error) {
		if current == nil {
			return nil, domainerrors.NotFound("entry not found")
		}
		existing, ok := current.Find(entryID)
		if !ok {
			return nil, domainerrors.NotFound("entry not found")
		}
		if existing.UserID != userID {
			return nil, domainerrors.Forbidden("you can only delete your own entries")
		}
		removed, _ = current.Remove(entryID)
		return current, nil
	})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	s.emitEntry(sse.EventEntryDeleted, slug, kind, removed)

	if s.logger != nil {
		s.logger.Info("Entry deleted", "book_id", slug, "kind", string(kind), "entry_id", entryID)
	}

	return nil
}

// List returns the most recent entries of a kind for a book, oldest
// first, capped at EntryDisplayLimit. Books nobody wrote about yield an
// empty list.
func (s *EntryService) List(ctx context.Context, kind domain.EntryKind, slug string) ([]domain.Entry, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown entry kind %q", string(kind))
	}

	doc, err := s.store.Entries.Get(ctx, domain.EntriesDocID(kind, slug))
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("get entries: %w", err)
	}

	return doc.Tail(EntryDisplayLimit), nil
}

// Report files a write-once report against an entry. The entry itself
// is never mutated; moderation acts on the report record.
func (s *EntryService) Report(ctx context.Context, kind domain.EntryKind, reporterID, slug, entryID, reason string) (*domain.Report, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown entry kind %q", string(kind))
	}
	if reporterID == "" {
		return nil, domainerrors.Unauthorized("sign in to report entries")
	}
	if !domain.ValidReportReason(reason) {
		return nil, domainerrors.Validation("unknown report reason")
	}

	doc, err := s.store.Entries.Get(ctx, domain.EntriesDocID(kind, slug))
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("entry not found")
		}
		return nil, fmt.Errorf("get entries: %w", err)
	}

	entry, ok := doc.Find(entryID)
	if !ok {
		return nil, domainerrors.NotFound("entry not found")
	}

	bookTitle := slug
	if book, err := s.store.Books.Get(ctx, slug); err == nil {
		bookTitle = book.Title
	}

	reportID, err := id.Generate("report")
	if err != nil {
		return nil, fmt.Errorf("generate report ID: %w", err)
	}

	report := &domain.Report{
		ID:         reportID,
		Kind:       kind,
		EntryID:    entry.ID,
		EntryText:  entry.Text,
		AuthorName: entry.Username,
		BookSlug:   slug,
		BookTitle:  bookTitle,
		ReporterID: reporterID,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}

	if err := s.store.Reports.Create(ctx, reportID, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	if s.emitter != nil {
		s.emitter.Emit(sse.NewReportCreatedEvent(report))
	}

	if s.logger != nil {
		s.logger.Info("Entry reported", "book_id", slug, "entry_id", entryID, "reason", reason)
	}

	return report, nil
}

// ListReports returns every filed report. Admin surface.
func (s *EntryService) ListReports(ctx context.Context) ([]*domain.Report, error) {
	var reports []*domain.Report
	for report, err := range s.store.Reports.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *EntryService) emitEntry(eventType sse.EventType, slug string, kind domain.EntryKind, entry domain.Entry) {
	if s.emitter != nil {
		s.emitter.Emit(sse.NewEntryEvent(eventType, slug, kind, entry))
	}
}

func newEntriesDoc(kind domain.EntryKind, slug string) *domain.BookEntries {
	now := time.Now()
	return &domain.BookEntries{
		ID:        domain.EntriesDocID(kind, slug),
		BookSlug:  slug,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
