package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// RankingService computes the weekly and all-time top-books lists.
// Lists are computed on demand; clients refetch when they receive a
// rankings-invalidated event.
type RankingService struct {
	store    *store.Store
	reserved *domain.ReservedBookTable
	logger   *slog.Logger
}

// NewRankingService creates a new ranking service.
func NewRankingService(s *store.Store, reserved *domain.ReservedBookTable, logger *slog.Logger) *RankingService {
	return &RankingService{
		store:    s,
		reserved: reserved,
		logger:   logger,
	}
}

// TopWeekly ranks books by likes recorded inside the current
// Monday-to-Sunday UTC window. Books without a like this week are
// excluded; at most the top ten are returned.
func (s *RankingService) TopWeekly(ctx context.Context) ([]domain.RankedBook, error) {
	books, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	return s.markReserved(domain.TopWeekly(books, time.Now())), nil
}

// TopAllTime ranks books by total likes, excluding books nobody liked.
func (s *RankingService) TopAllTime(ctx context.Context) ([]domain.RankedBook, error) {
	books, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	return s.markReserved(domain.TopAllTime(books)), nil
}

func (s *RankingService) collect(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// markReserved flags ranked entries whose title displays an unbounded
// like counter.
func (s *RankingService) markReserved(ranked []domain.RankedBook) []domain.RankedBook {
	for i := range ranked {
		if rule := s.reserved.BySlug(ranked[i].Book.ID); rule != nil && rule.InfiniteLikes {
			ranked[i].Infinite = true
		}
	}
	return ranked
}
