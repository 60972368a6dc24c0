// Package api provides the HTTP API server and handlers for the BookSwipe application.
package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"log/slog"

	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	sseHandler      *sse.Handler
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sseManager *sse.Manager, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		services:        services,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	// SSE subscribers identify themselves with the same bearer tokens as
	// the rest of the API; anonymous connections get broadcast events only.
	s.sseHandler = sse.NewHandler(sseManager, logger, func(r *http.Request) (string, bool) {
		userID, err := s.authenticateRequest(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			return "", false
		}
		user, err := s.store.Users.Get(r.Context(), userID)
		if err != nil {
			return userID, false
		}
		return userID, user.IsAdmin()
	})

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("BookSwipe API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Last-Event-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Credential endpoints are the brute-force surface; everything else
	// stays unthrottled on a home network.
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, "/api/v1/auth/", s.logger))
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerFeedRoutes()
	s.registerEngagementRoutes()
	s.registerFavoritesRoutes()
	s.registerEntryRoutes()
	s.registerLookupRoutes()
	s.registerRankingRoutes()
	s.registerCatalogRoutes()
	s.registerSuggestionRoutes()

	// SSE streaming bypasses huma; the handler owns the connection.
	s.router.Get("/api/v1/events/stream", s.sseHandler.ServeHTTP)
}
