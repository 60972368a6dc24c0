// Package di provides dependency injection configuration for the BookSwipe server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookswipe/bookswipe-server/internal/auth"
	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/di/providers"
	"github.com/bookswipe/bookswipe-server/internal/logger"
	"github.com/bookswipe/bookswipe-server/internal/media"
	"github.com/bookswipe/bookswipe-server/internal/metadata/googlebooks"
	"github.com/bookswipe/bookswipe-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideReservedBooks)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Media and metadata layer
	do.Provide(injector, providers.ProvideCoverStorage)
	do.Provide(injector, providers.ProvideCoverService)
	do.Provide(injector, providers.ProvideGoogleBooksClient)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideFeedService)
	do.Provide(injector, providers.ProvideEngagementService)
	do.Provide(injector, providers.ProvideFavoritesService)
	do.Provide(injector, providers.ProvideEntryService)
	do.Provide(injector, providers.ProvideLookupService)
	do.Provide(injector, providers.ProvideRankingService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideSuggestionService)

	// Startup seeding and workers
	do.Provide(injector, providers.ProvideBootstrap)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*media.Storage](injector)
	_ = do.MustInvoke[*media.CoverService](injector)
	_ = do.MustInvoke[*googlebooks.Client](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.FeedService](injector)
	_ = do.MustInvoke[*service.EngagementService](injector)
	_ = do.MustInvoke[*service.FavoritesService](injector)
	_ = do.MustInvoke[*service.EntryService](injector)
	_ = do.MustInvoke[*service.LookupService](injector)
	_ = do.MustInvoke[*service.RankingService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.SuggestionService](injector)

	// Startup seeding and workers
	_ = do.MustInvoke[*providers.Bootstrap](injector)
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
