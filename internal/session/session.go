// Package session implements server-side session storage for the
// cookie-based authentication gate. The browser holds only an opaque
// token; the session record lives in Redis (or an in-memory fallback).
package session

import (
	"context"
	"time"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "socialsync_session"

// TTL is how long an idle session survives before it expires.
const TTL = 7 * 24 * time.Hour

// Session is the typed record established at login.
//
// Handle is a cached derived field: the local part of the account email
// at login time. An email change through account-info updates it on the
// next login.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Handle   string `json:"handle"`
}

// Store persists sessions keyed by an opaque token.
type Store interface {
	// Create stores the session under a fresh random token and returns it.
	Create(ctx context.Context, sess Session) (string, error)
	// Get returns the session for the token, or (nil, nil) when the token
	// is unknown or expired.
	Get(ctx context.Context, token string) (*Session, error)
	// Destroy removes the session. Unknown tokens are not an error.
	Destroy(ctx context.Context, token string) error
}
