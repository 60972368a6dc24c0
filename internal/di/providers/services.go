package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookswipe/bookswipe-server/internal/auth"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/logger"
	"github.com/bookswipe/bookswipe-server/internal/media"
	"github.com/bookswipe/bookswipe-server/internal/metadata/googlebooks"
	"github.com/bookswipe/bookswipe-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideFeedService provides the swipe feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideEngagementService provides the like/dislike service.
func ProvideEngagementService(i do.Injector) (*service.EngagementService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	reserved := do.MustInvoke[*domain.ReservedBookTable](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngagementService(storeHandle.Store, sseHandle.Manager, reserved, log.Logger), nil
}

// ProvideFavoritesService provides the favorites list service.
func ProvideFavoritesService(i do.Injector) (*service.FavoritesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoritesService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideEntryService provides the comments and quotes service.
func ProvideEntryService(i do.Injector) (*service.EntryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	reserved := do.MustInvoke[*domain.ReservedBookTable](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEntryService(storeHandle.Store, sseHandle.Manager, reserved, log.Logger), nil
}

// ProvideLookupService provides the ISBN lookup service.
func ProvideLookupService(i do.Injector) (*service.LookupService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reserved := do.MustInvoke[*domain.ReservedBookTable](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLookupService(storeHandle.Store, reserved, log.Logger), nil
}

// ProvideRankingService provides the leaderboard service.
func ProvideRankingService(i do.Injector) (*service.RankingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reserved := do.MustInvoke[*domain.ReservedBookTable](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRankingService(storeHandle.Store, reserved, log.Logger), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	covers := do.MustInvoke[*media.CoverService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.Index, covers, sseHandle.Manager, log.Logger), nil
}

// ProvideSuggestionService provides the suggestion service.
func ProvideSuggestionService(i do.Injector) (*service.SuggestionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	metadataClient := do.MustInvoke[*googlebooks.Client](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSuggestionService(storeHandle.Store, catalogService, metadataClient, sseHandle.Manager, log.Logger), nil
}
