package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
)

func (s *Server) registerRankingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getWeeklyRankings",
		Method:      http.MethodGet,
		Path:        "/api/v1/rankings/weekly",
		Summary:     "Weekly top books",
		Description: "Ranks books by likes recorded in the current Monday-to-Sunday UTC week",
		Tags:        []string{"Rankings"},
	}, s.handleWeeklyRankings)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAllTimeRankings",
		Method:      http.MethodGet,
		Path:        "/api/v1/rankings/all-time",
		Summary:     "All-time top books",
		Description: "Ranks books by total likes",
		Tags:        []string{"Rankings"},
	}, s.handleAllTimeRankings)
}

// === DTOs ===

// RankedBookResponse pairs a book snapshot with its rank and score.
type RankedBookResponse struct {
	Rank     int          `json:"rank" doc:"Position, starting at one"`
	Book     FavoriteBook `json:"book" doc:"Book snapshot"`
	Likes    int64        `json:"likes" doc:"All-time like count"`
	Score    int          `json:"score" doc:"Likes inside the ranking window"`
	Infinite bool         `json:"infinite,omitempty" doc:"True when the counter displays as unbounded"`
}

// RankingsOutput wraps a ranking list for Huma.
type RankingsOutput struct {
	Body struct {
		Rankings []RankedBookResponse `json:"rankings" doc:"At most ten entries"`
	}
}

func rankingsOutputFrom(ranked []domain.RankedBook) *RankingsOutput {
	out := &RankingsOutput{}
	out.Body.Rankings = make([]RankedBookResponse, len(ranked))
	for i, r := range ranked {
		out.Body.Rankings[i] = RankedBookResponse{
			Rank: r.Rank,
			Book: FavoriteBook{
				ID:       r.Book.ID,
				Title:    r.Book.Title,
				Author:   r.Book.Author,
				CoverURL: r.Book.CoverURL,
				ISBN:     r.Book.ISBN,
			},
			Likes:    r.Likes,
			Score:    r.Score,
			Infinite: r.Infinite,
		}
	}
	return out
}

// === Handlers ===

func (s *Server) handleWeeklyRankings(ctx context.Context, _ *struct{}) (*RankingsOutput, error) {
	ranked, err := s.services.Ranking.TopWeekly(ctx)
	if err != nil {
		return nil, err
	}
	return rankingsOutputFrom(ranked), nil
}

func (s *Server) handleAllTimeRankings(ctx context.Context, _ *struct{}) (*RankingsOutput, error) {
	ranked, err := s.services.Ranking.TopAllTime(ctx)
	if err != nil {
		return nil, err
	}
	return rankingsOutputFrom(ranked), nil
}
