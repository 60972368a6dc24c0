package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed",
		Summary:     "Get swipe feed",
		Description: "Returns the full catalog deck and the user's persisted position in it",
		Tags:        []string{"Feed"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "advanceFeed",
		Method:      http.MethodPost,
		Path:        "/api/v1/feed/advance",
		Summary:     "Advance feed position",
		Description: "Moves the swipe cursor forward; persistence is asynchronous",
		Tags:        []string{"Feed"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdvanceFeed)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	Slug          string `json:"slug" doc:"Title-derived identifier"`
	Title         string `json:"title" doc:"Book title"`
	Author        string `json:"author,omitempty" doc:"Author"`
	CoverURL      string `json:"cover_url,omitempty" doc:"Cover image URL"`
	CoverBlurHash string `json:"cover_blur_hash,omitempty" doc:"BlurHash placeholder"`
	Description   string `json:"description,omitempty" doc:"Description"`
	ISBN          string `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13"`
	PageCount     int    `json:"page_count,omitempty" doc:"Page count"`
	PublishedDate string `json:"published_date,omitempty" doc:"Publication date"`
	Likes         int64  `json:"likes" doc:"All-time like count"`
	Dislikes      int64  `json:"dislikes" doc:"All-time dislike count"`
}

func bookResponseFrom(book *domain.Book) BookResponse {
	return BookResponse{
		Slug:          book.ID,
		Title:         book.Title,
		Author:        book.Author,
		CoverURL:      book.CoverURL,
		CoverBlurHash: book.CoverBlurHash,
		Description:   book.Description,
		ISBN:          book.ISBN,
		PageCount:     book.PageCount,
		PublishedDate: book.PublishedDate,
		Likes:         book.Likes,
		Dislikes:      book.Dislikes,
	}
}

// GetFeedInput contains parameters for loading the feed.
type GetFeedInput struct {
	Authorization string `header:"Authorization"`
}

// FeedResponse contains the deck and cursor position.
type FeedResponse struct {
	Books   []BookResponse `json:"books" doc:"Catalog deck in stable order"`
	Index   int            `json:"index" doc:"Current cursor position"`
	Current *BookResponse  `json:"current,omitempty" doc:"Book at the cursor, wrapping cyclically"`
}

// FeedOutput wraps the feed response for Huma.
type FeedOutput struct {
	Body FeedResponse
}

// AdvanceFeedRequest is the request body for advancing the cursor.
type AdvanceFeedRequest struct {
	Index int `json:"index" minimum:"0" doc:"Cursor position being advanced from"`
}

// AdvanceFeedInput wraps the advance request for Huma.
type AdvanceFeedInput struct {
	Authorization string `header:"Authorization"`
	Body          AdvanceFeedRequest
}

// AdvanceFeedOutput wraps the new cursor position for Huma.
type AdvanceFeedOutput struct {
	Body struct {
		Index int `json:"index" doc:"New cursor position"`
	}
}

// === Handlers ===

func (s *Server) handleGetFeed(ctx context.Context, input *GetFeedInput) (*FeedOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	books, index := s.services.Feed.Load(ctx, userID)

	resp := FeedResponse{
		Books: make([]BookResponse, len(books)),
		Index: index,
	}
	for i, book := range books {
		resp.Books[i] = bookResponseFrom(book)
	}
	if current := s.services.Feed.Current(books, index); current != nil {
		c := bookResponseFrom(current)
		resp.Current = &c
	}

	return &FeedOutput{Body: resp}, nil
}

func (s *Server) handleAdvanceFeed(ctx context.Context, input *AdvanceFeedInput) (*AdvanceFeedOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	out := &AdvanceFeedOutput{}
	out.Body.Index = s.services.Feed.Advance(ctx, userID, input.Body.Index)
	return out, nil
}
