package storage

import (
	"context"
	"time"
)

// Storage keys for the token pair. The cookie written for edge-side
// request interception reuses the access token key as its name.
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
)

// CookieMaxAge задаёт срок жизни cookie с access token (30 дней)
const CookieMaxAge = 30 * 24 * time.Hour

// ClientStorage defines the durable key-value sink for client state.
// This is the lowest storage layer - it works with opaque string values
// and doesn't know anything about token semantics.
type ClientStorage interface {
	// Set stores a value under the given key
	Set(ctx context.Context, key, value string) error

	// Get retrieves a stored value
	// Returns ErrTokenNotFound if the key holds no value
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a stored value; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// EdgeStorage defines the cookie sink visible to edge-side tooling
// (reverse proxy, curl) that cannot read the durable store.
type EdgeStorage interface {
	// SetCookie writes a cookie with the given time-to-live
	SetCookie(name, value string, ttl time.Duration) error

	// Cookie reads a cookie value
	// Returns ErrTokenNotFound if the cookie is absent or expired
	Cookie(name string) (string, error)

	// ExpireCookie expires a cookie immediately
	ExpireCookie(name string) error
}
