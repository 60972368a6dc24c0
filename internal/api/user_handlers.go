package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "List sessions",
		Description: "Returns the authenticated user's active sessions",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSessions)
}

// === DTOs ===

// GetCurrentUserInput contains parameters for the current-user endpoint.
type GetCurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// SessionInfo describes one active session.
type SessionInfo struct {
	ID         string `json:"id" doc:"Session ID"`
	DeviceName string `json:"device_name,omitempty" doc:"Device name"`
	Platform   string `json:"platform,omitempty" doc:"Platform"`
	CreatedAt  string `json:"created_at" doc:"Session creation time"`
	LastSeenAt string `json:"last_seen_at" doc:"Last activity"`
}

// ListSessionsInput contains parameters for listing sessions.
type ListSessionsInput struct {
	Authorization string `header:"Authorization"`
}

// ListSessionsOutput wraps the session list for Huma.
type ListSessionsOutput struct {
	Body struct {
		Sessions []SessionInfo `json:"sessions" doc:"Active sessions"`
	}
}

// === Handlers ===

func (s *Server) handleGetCurrentUser(ctx context.Context, input *GetCurrentUserInput) (*UserOutput, error) {
	user, err := s.authenticatedUser(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        string(user.Role),
		FeedIndex:   user.FeedIndex,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}}, nil
}

func (s *Server) handleListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ListSessionsOutput{}
	out.Body.Sessions = make([]SessionInfo, len(sessions))
	for i, session := range sessions {
		out.Body.Sessions[i] = SessionInfo{
			ID:         session.ID,
			DeviceName: session.DeviceName,
			Platform:   session.Platform,
			CreatedAt:  session.CreatedAt.UTC().Format(time.RFC3339),
			LastSeenAt: session.LastSeenAt.UTC().Format(time.RFC3339),
		}
	}
	return out, nil
}
