package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/auth"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/service"
	"github.com/bookswipe/bookswipe-server/internal/sse"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

// testEnvelope mirrors the response envelope for unmarshalling in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer builds a server on a temporary store with the full
// service stack wired, minus search and covers.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger, store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sseManager := sse.NewManager(logger)

	reserved := domain.NewReservedBookTable([]domain.ReservedBook{
		{
			Slug:           "nutuk",
			ISBN:           "9789944888349",
			NoDislikes:     true,
			DislikeMessage: "This book is too valuable to criticize",
			InfiniteLikes:  true,
			NoEntries:      true,
			EntriesMessage: "This book speaks for itself",
		},
	})

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)
	catalogService := service.NewCatalogService(st, nil, nil, sseManager, logger)

	services := &Services{
		Auth:       authService,
		Session:    sessionService,
		Feed:       service.NewFeedService(st, sseManager, logger),
		Engagement: service.NewEngagementService(st, sseManager, reserved, logger),
		Favorites:  service.NewFavoritesService(st, sseManager, logger),
		Entries:    service.NewEntryService(st, sseManager, reserved, logger),
		Lookup:     service.NewLookupService(st, reserved, logger),
		Ranking:    service.NewRankingService(st, reserved, logger),
		Catalog:    catalogService,
		Suggestion: service.NewSuggestionService(st, catalogService, nil, sseManager, logger),
	}

	s := NewServer(st, services, sseManager, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// registerUser creates an account through the API and returns its token.
func (ts *testServer) registerUser(t *testing.T, email, username string) (token string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    email,
		"username": username,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}
