package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{slug}/{kind}",
		Summary:     "List entries",
		Description: "Returns the last ten comments or quotes for a book, oldest first",
		Tags:        []string{"Entries"},
	}, s.handleListEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "addEntry",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{slug}/{kind}",
		Summary:     "Add entry",
		Description: "Appends a comment or quote to a book",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "editEntry",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{slug}/{kind}/{entryId}",
		Summary:     "Edit entry",
		Description: "Rewrites an entry's text. Authors can only edit their own entries.",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEditEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{slug}/{kind}/{entryId}",
		Summary:     "Delete entry",
		Description: "Deletes an entry. Authors can only delete their own entries.",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "reportEntry",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{slug}/{kind}/{entryId}/report",
		Summary:     "Report entry",
		Description: "Flags an entry for moderation. The entry itself is left untouched.",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReportEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReports",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports",
		Summary:     "List reports",
		Description: "Returns all moderation reports. Admin only.",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListReports)
}

// entryKind validates the collection segment of the path.
func entryKind(kind string) (domain.EntryKind, error) {
	k := domain.EntryKind(kind)
	if !k.Valid() {
		return "", domainerrors.Validationf("unknown entry kind %q", kind)
	}
	return k, nil
}

// === DTOs ===

// EntryResponse contains entry data in API responses.
type EntryResponse struct {
	ID        string    `json:"id" doc:"Entry ID"`
	UserID    string    `json:"user_id" doc:"Author's user ID"`
	Username  string    `json:"username" doc:"Author's display name at creation time"`
	Text      string    `json:"text" doc:"Entry text"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	Edited    bool      `json:"edited,omitempty" doc:"True once the entry has been edited"`
}

func entryResponseFrom(entry domain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Username:  entry.Username,
		Text:      entry.Text,
		CreatedAt: entry.CreatedAt,
		Edited:    entry.Edited,
	}
}

// ListEntriesInput contains parameters for listing entries.
type ListEntriesInput struct {
	Slug string `path:"slug" doc:"Book slug"`
	Kind string `path:"kind" enum:"comments,quotes" doc:"Entry collection"`
}

// EntriesOutput wraps an entry list for Huma.
type EntriesOutput struct {
	Body struct {
		Entries []EntryResponse `json:"entries" doc:"Last ten entries, oldest first"`
	}
}

// AddEntryRequest is the request body for adding an entry.
type AddEntryRequest struct {
	Text string `json:"text" maxLength:"2000" doc:"Entry text"`
}

// AddEntryInput wraps the add-entry request for Huma.
type AddEntryInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Book slug"`
	Kind          string `path:"kind" enum:"comments,quotes" doc:"Entry collection"`
	Body          AddEntryRequest
}

// EntryOutput wraps a single entry for Huma.
type EntryOutput struct {
	Body EntryResponse
}

// EditEntryInput wraps the edit-entry request for Huma.
type EditEntryInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Book slug"`
	Kind          string `path:"kind" enum:"comments,quotes" doc:"Entry collection"`
	EntryID       string `path:"entryId" doc:"Entry ID"`
	Body          AddEntryRequest
}

// DeleteEntryInput contains parameters for deleting an entry.
type DeleteEntryInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Book slug"`
	Kind          string `path:"kind" enum:"comments,quotes" doc:"Entry collection"`
	EntryID       string `path:"entryId" doc:"Entry ID"`
}

// ReportEntryRequest is the request body for reporting an entry.
type ReportEntryRequest struct {
	Reason string `json:"reason" maxLength:"100" doc:"One of the fixed report reasons"`
}

// ReportEntryInput wraps the report request for Huma.
type ReportEntryInput struct {
	Authorization string `header:"Authorization"`
	Slug          string `path:"slug" doc:"Book slug"`
	Kind          string `path:"kind" enum:"comments,quotes" doc:"Entry collection"`
	EntryID       string `path:"entryId" doc:"Entry ID"`
	Body          ReportEntryRequest
}

// ReportResponse contains report data in API responses.
type ReportResponse struct {
	ID         string    `json:"id" doc:"Report ID"`
	Kind       string    `json:"kind" doc:"Entry collection"`
	EntryID    string    `json:"entry_id" doc:"Reported entry ID"`
	EntryText  string    `json:"entry_text" doc:"Entry text at report time"`
	AuthorName string    `json:"author_name" doc:"Entry author's display name"`
	BookSlug   string    `json:"book_slug" doc:"Book slug"`
	BookTitle  string    `json:"book_title" doc:"Book title"`
	ReporterID string    `json:"reporter_id" doc:"Reporting user's ID"`
	Reason     string    `json:"reason" doc:"Selected reason"`
	CreatedAt  time.Time `json:"created_at" doc:"Report time"`
}

// ReportOutput wraps a single report for Huma.
type ReportOutput struct {
	Body ReportResponse
}

// ListReportsInput contains parameters for listing reports.
type ListReportsInput struct {
	Authorization string `header:"Authorization"`
}

// ReportsOutput wraps a report list for Huma.
type ReportsOutput struct {
	Body struct {
		Reports []ReportResponse `json:"reports" doc:"All moderation reports"`
	}
}

func reportResponseFrom(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		Kind:       string(report.Kind),
		EntryID:    report.EntryID,
		EntryText:  report.EntryText,
		AuthorName: report.AuthorName,
		BookSlug:   report.BookSlug,
		BookTitle:  report.BookTitle,
		ReporterID: report.ReporterID,
		Reason:     report.Reason,
		CreatedAt:  report.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListEntries(ctx context.Context, input *ListEntriesInput) (*EntriesOutput, error) {
	kind, err := entryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	entries, err := s.services.Entries.List(ctx, kind, input.Slug)
	if err != nil {
		return nil, err
	}

	out := &EntriesOutput{}
	out.Body.Entries = make([]EntryResponse, len(entries))
	for i, entry := range entries {
		out.Body.Entries[i] = entryResponseFrom(entry)
	}
	return out, nil
}

func (s *Server) handleAddEntry(ctx context.Context, input *AddEntryInput) (*EntryOutput, error) {
	kind, err := entryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Entries.Add(ctx, kind, userID, input.Slug, input.Body.Text)
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: entryResponseFrom(*entry)}, nil
}

func (s *Server) handleEditEntry(ctx context.Context, input *EditEntryInput) (*EntryOutput, error) {
	kind, err := entryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Entries.Edit(ctx, kind, userID, input.Slug, input.EntryID, input.Body.Text)
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: entryResponseFrom(*entry)}, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, input *DeleteEntryInput) (*EmptyOutput, error) {
	kind, err := entryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Entries.Delete(ctx, kind, userID, input.Slug, input.EntryID); err != nil {
		return nil, err
	}
	return &EmptyOutput{}, nil
}

func (s *Server) handleReportEntry(ctx context.Context, input *ReportEntryInput) (*ReportOutput, error) {
	kind, err := entryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	report, err := s.services.Entries.Report(ctx, kind, userID, input.Slug, input.EntryID, input.Body.Reason)
	if err != nil {
		return nil, err
	}
	return &ReportOutput{Body: reportResponseFrom(report)}, nil
}

func (s *Server) handleListReports(ctx context.Context, input *ListReportsInput) (*ReportsOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reports, err := s.services.Entries.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReportsOutput{}
	out.Body.Reports = make([]ReportResponse, len(reports))
	for i, report := range reports {
		out.Body.Reports[i] = reportResponseFrom(report)
	}
	return out, nil
}
