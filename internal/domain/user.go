package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants catalog management access.
	RoleAdmin Role = "admin"
	// RoleMember grants standard user access.
	RoleMember Role = "member"
)

// User represents an authenticated user account.
// LikedBooks and DislikedBooks are the engagement projection: sets of
// book slugs the user has liked or disliked. A slug appears in at most
// one of the two sets at any time; the engagement service enforces the
// rule, not the storage layer.
type User struct {
	Syncable
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role          Role      `json:"role"`
	LikedBooks    []string  `json:"liked_books,omitempty"`
	DislikedBooks []string  `json:"disliked_books,omitempty"`
	FeedIndex     int       `json:"feed_index"` // Last viewed position in the swipe feed
	LastLoginAt   time.Time `json:"last_login_at"`
}

// IsAdmin returns true if the user may manage the catalog.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Name returns the best available name to display for the user.
// Prefers Username, falls back to email.
func (u *User) Name() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Session represents an active user session with a refresh token.
// Each device gets its own session.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash,omitempty"` // Stored hashed, filter from API responses
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	DeviceName       string    `json:"device_name,omitempty"`
	Platform         string    `json:"platform,omitempty"` // iOS, Android, Web
}

// Touch updates the session's last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// IsExpired checks if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
