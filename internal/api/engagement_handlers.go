package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/service"
)

func (s *Server) registerEngagementRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "likeBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/engagement/like",
		Summary:     "Like a book",
		Description: "Records a like; the book is created in the catalog on first engagement",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikeBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "dislikeBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/engagement/dislike",
		Summary:     "Dislike a book",
		Description: "Records a dislike; reserved titles may refuse with a fixed message",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDislikeBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "undoEngagement",
		Method:      http.MethodPost,
		Path:        "/api/v1/engagement/undo",
		Summary:     "Undo engagement",
		Description: "Reverses the user's current like or dislike on a book",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUndoEngagement)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEngagementState",
		Method:      http.MethodGet,
		Path:        "/api/v1/engagement/state",
		Summary:     "Get engagement state",
		Description: "Returns whether the user has liked or disliked the titled book",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetEngagementState)
}

// === DTOs ===

// EngageRequest describes the book being reacted to. The title is the
// identity; the remaining fields seed the catalog entry when this is
// the first engagement anyone recorded for the book.
type EngageRequest struct {
	Title         string `json:"title" maxLength:"500" doc:"Book title"`
	Author        string `json:"author,omitempty" maxLength:"500" doc:"Author"`
	CoverURL      string `json:"cover_url,omitempty" format:"uri" maxLength:"2000" doc:"Remote cover URL"`
	Description   string `json:"description,omitempty" doc:"Description"`
	ISBN          string `json:"isbn,omitempty" maxLength:"13" doc:"ISBN"`
	PageCount     int    `json:"page_count,omitempty" minimum:"0" doc:"Page count"`
	PublishedDate string `json:"published_date,omitempty" doc:"Publication date"`
}

func (r EngageRequest) seed() service.BookSeed {
	return service.BookSeed{
		Title:         r.Title,
		Author:        r.Author,
		CoverURL:      r.CoverURL,
		Description:   r.Description,
		ISBN:          r.ISBN,
		PageCount:     r.PageCount,
		PublishedDate: r.PublishedDate,
	}
}

// EngageInput wraps the engagement request for Huma.
type EngageInput struct {
	Authorization string `header:"Authorization"`
	Body          EngageRequest
}

// UndoRequest is the request body for undoing an engagement.
type UndoRequest struct {
	Title string `json:"title" maxLength:"500" doc:"Book title"`
}

// UndoInput wraps the undo request for Huma.
type UndoInput struct {
	Authorization string `header:"Authorization"`
	Body          UndoRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// EngagementStateInput contains parameters for the state query.
type EngagementStateInput struct {
	Authorization string `header:"Authorization"`
	Title         string `query:"title" required:"true" doc:"Book title"`
}

// EngagementStateOutput wraps the state response for Huma.
type EngagementStateOutput struct {
	Body struct {
		State string `json:"state" doc:"liked, disliked, or none"`
	}
}

// === Handlers ===

func (s *Server) handleLikeBook(ctx context.Context, input *EngageInput) (*BookOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Engagement.Like(ctx, userID, input.Body.seed())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponseFrom(book)}, nil
}

func (s *Server) handleDislikeBook(ctx context.Context, input *EngageInput) (*BookOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Engagement.Dislike(ctx, userID, input.Body.seed())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponseFrom(book)}, nil
}

func (s *Server) handleUndoEngagement(ctx context.Context, input *UndoInput) (*BookOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Engagement.Undo(ctx, userID, input.Body.Title)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponseFrom(book)}, nil
}

func (s *Server) handleGetEngagementState(ctx context.Context, input *EngagementStateInput) (*EngagementStateOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	state, err := s.services.Engagement.State(ctx, userID, input.Title)
	if err != nil {
		return nil, err
	}

	out := &EngagementStateOutput{}
	out.Body.State = string(state)
	return out, nil
}
