package api

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
	"github.com/bookswipe/bookswipe-server/internal/store"
)

// isNotFound reports whether err is a miss rather than a real failure.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || domainerrors.Is(err, domainerrors.ErrNotFound)
}

// authenticateRequest validates the Authorization header and returns the user ID.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return user.ID, nil
}

// authenticatedUser validates the token and returns the full user record.
// Use when a handler needs role or profile fields, not just the ID.
func (s *Server) authenticatedUser(ctx context.Context, authHeader string) (*domain.User, error) {
	userID, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}
	return user, nil
}

// authenticateAndRequireAdmin validates the token and requires admin role.
func (s *Server) authenticateAndRequireAdmin(ctx context.Context, authHeader string) (string, error) {
	user, err := s.authenticatedUser(ctx, authHeader)
	if err != nil {
		return "", err
	}

	if !user.IsAdmin() {
		return "", domainerrors.Forbidden("Admin access required")
	}

	return user.ID, nil
}
