package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/service"
)

func (s *Server) registerSuggestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions",
		Summary:     "Suggest a book",
		Description: "Files a catalog suggestion, typically after a failed lookup",
		Tags:        []string{"Suggestions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateSuggestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/suggestions",
		Summary:     "List suggestions",
		Description: "Returns all suggestions. Admin only.",
		Tags:        []string{"Suggestions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSuggestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "approveSuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions/{id}/approve",
		Summary:     "Approve suggestion",
		Description: "Approves a suggestion and adds the book to the catalog. Admin only.",
		Tags:        []string{"Suggestions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleApproveSuggestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "rejectSuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions/{id}/reject",
		Summary:     "Reject suggestion",
		Description: "Rejects a suggestion without touching the catalog. Admin only.",
		Tags:        []string{"Suggestions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRejectSuggestion)
}

// === DTOs ===

// CreateSuggestionRequest is the request body for filing a suggestion.
type CreateSuggestionRequest struct {
	Identifier string `json:"identifier,omitempty" maxLength:"13" doc:"ISBN that failed to resolve"`
	Title      string `json:"title,omitempty" maxLength:"500" doc:"Suggested title"`
	Author     string `json:"author,omitempty" maxLength:"500" doc:"Suggested author"`
}

// CreateSuggestionInput wraps the suggestion request for Huma.
type CreateSuggestionInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateSuggestionRequest
}

// SuggestionResponse contains suggestion data in API responses.
type SuggestionResponse struct {
	ID          string    `json:"id" doc:"Suggestion ID"`
	UserID      string    `json:"user_id" doc:"Suggesting user's ID"`
	Identifier  string    `json:"identifier,omitempty" doc:"ISBN hint"`
	Title       string    `json:"title,omitempty" doc:"Title, possibly filled by enrichment"`
	Author      string    `json:"author,omitempty" doc:"Author, possibly filled by enrichment"`
	Description string    `json:"description,omitempty" doc:"Markdown description from enrichment"`
	CoverURL    string    `json:"cover_url,omitempty" doc:"Cover URL from enrichment"`
	PageCount   int       `json:"page_count,omitempty" doc:"Page count from enrichment"`
	Status      string    `json:"status" doc:"pending, approved, or rejected"`
	CreatedAt   time.Time `json:"created_at" doc:"Filing time"`
}

func suggestionResponseFrom(suggestion *domain.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:          suggestion.ID,
		UserID:      suggestion.UserID,
		Identifier:  suggestion.Identifier,
		Title:       suggestion.Title,
		Author:      suggestion.Author,
		Description: suggestion.Description,
		CoverURL:    suggestion.CoverURL,
		PageCount:   suggestion.PageCount,
		Status:      string(suggestion.Status),
		CreatedAt:   suggestion.CreatedAt,
	}
}

// SuggestionOutput wraps a single suggestion for Huma.
type SuggestionOutput struct {
	Body SuggestionResponse
}

// ListSuggestionsInput contains parameters for listing suggestions.
type ListSuggestionsInput struct {
	Authorization string `header:"Authorization"`
}

// SuggestionsOutput wraps a suggestion list for Huma.
type SuggestionsOutput struct {
	Body struct {
		Suggestions []SuggestionResponse `json:"suggestions" doc:"All suggestions"`
	}
}

// SuggestionActionInput contains parameters for approve and reject.
type SuggestionActionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Suggestion ID"`
}

// === Handlers ===

func (s *Server) handleCreateSuggestion(ctx context.Context, input *CreateSuggestionInput) (*SuggestionOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.services.Suggestion.Create(ctx, userID, service.CreateSuggestionRequest{
		Identifier: input.Body.Identifier,
		Title:      input.Body.Title,
		Author:     input.Body.Author,
	})
	if err != nil {
		return nil, err
	}
	return &SuggestionOutput{Body: suggestionResponseFrom(suggestion)}, nil
}

func (s *Server) handleListSuggestions(ctx context.Context, input *ListSuggestionsInput) (*SuggestionsOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	suggestions, err := s.services.Suggestion.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &SuggestionsOutput{}
	out.Body.Suggestions = make([]SuggestionResponse, len(suggestions))
	for i, suggestion := range suggestions {
		out.Body.Suggestions[i] = suggestionResponseFrom(suggestion)
	}
	return out, nil
}

func (s *Server) handleApproveSuggestion(ctx context.Context, input *SuggestionActionInput) (*SuggestionOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	suggestion, err := s.services.Suggestion.Approve(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SuggestionOutput{Body: suggestionResponseFrom(suggestion)}, nil
}

func (s *Server) handleRejectSuggestion(ctx context.Context, input *SuggestionActionInput) (*SuggestionOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	suggestion, err := s.services.Suggestion.Reject(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SuggestionOutput{Body: suggestionResponseFrom(suggestion)}, nil
}
