package api

import (
	"github.com/bookswipe/bookswipe-server/internal/media"
	"github.com/bookswipe/bookswipe-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth       *service.AuthService
	Session    *service.SessionService
	Feed       *service.FeedService
	Engagement *service.EngagementService
	Favorites  *service.FavoritesService
	Entries    *service.EntryService
	Lookup     *service.LookupService
	Ranking    *service.RankingService
	Catalog    *service.CatalogService
	Suggestion *service.SuggestionService
	Covers     *media.CoverService // Local cover storage, nil disables cover serving
}
