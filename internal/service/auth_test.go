package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswipe/bookswipe-server/internal/auth"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	domainerrors "github.com/bookswipe/bookswipe-server/internal/errors"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	s := newTestStore(t)
	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sessions := NewSessionService(s, tokens, newTestLogger())
	return NewAuthService(s, tokens, sessions, newTestLogger())
}

func register(t *testing.T, svc *AuthService, email, username string) *AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Username: username,
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_FirstUserBecomesAdmin(t *testing.T) {
	svc := newAuthFixture(t)

	first := register(t, svc, "alice@example.com", "alice")
	assert.Equal(t, domain.RoleAdmin, first.User.Role)
	assert.NotEmpty(t, first.AccessToken)
	assert.NotEmpty(t, first.RefreshToken)
	assert.Equal(t, "Bearer", first.TokenType)

	second := register(t, svc, "bob@example.com", "bob")
	assert.Equal(t, domain.RoleMember, second.User.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)
	register(t, svc, "alice@example.com", "alice")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "another long password",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthFixture(t)

	cases := []RegisterRequest{
		{Email: "not-an-email", Username: "alice", Password: "long enough password"},
		{Email: "alice@example.com", Username: "al", Password: "long enough password"},
		{Email: "alice@example.com", Username: "alice", Password: "short"},
		{Email: "alice@example.com", Username: strings.Repeat("x", 33), Password: "long enough password"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err, "request %+v", req)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "request %+v", req)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthFixture(t)
	register(t, svc, "alice@example.com", "alice")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthFixture(t)
	register(t, svc, "alice@example.com", "alice")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password entirely",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))

	// Unknown email gets the same answer as a wrong password.
	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery staple",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	svc := newAuthFixture(t)
	resp := register(t, svc, "alice@example.com", "alice")

	user, claims, err := svc.VerifyAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, _, err = svc.VerifyAccessToken(context.Background(), "v4.local.garbage")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthService_RefreshTokens_RotatesRefreshToken(t *testing.T) {
	svc := newAuthFixture(t)
	resp := register(t, svc, "alice@example.com", "alice")

	refreshed, err := svc.RefreshTokens(context.Background(), RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, resp.SessionID, refreshed.SessionID)

	// The old refresh token is dead after rotation.
	_, err = svc.RefreshTokens(context.Background(), RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAuthService_Logout_KillsSession(t *testing.T) {
	svc := newAuthFixture(t)
	resp := register(t, svc, "alice@example.com", "alice")

	require.NoError(t, svc.Logout(context.Background(), resp.SessionID))

	_, err := svc.RefreshTokens(context.Background(), RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))
}

func TestSessionService_ListAndExpire(t *testing.T) {
	svc := newAuthFixture(t)
	resp := register(t, svc, "alice@example.com", "alice")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:      "alice@example.com",
		Password:   "correct horse battery staple",
		DeviceInfo: auth.DeviceInfo{Platform: "ios", DeviceName: "Alice's phone"},
	})
	require.NoError(t, err)

	sessions, err := svc.sessionService.ListUserSessions(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Force one session past its expiry and reap it.
	session, err := svc.store.Sessions.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	session.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, svc.store.Sessions.Update(context.Background(), session.ID, session))

	removed, err := svc.sessionService.DeleteExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	sessions, err = svc.sessionService.ListUserSessions(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
