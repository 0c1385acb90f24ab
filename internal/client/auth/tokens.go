package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/procure/internal/client/storage"
)

// TokenStore persists the session token pair across two sinks: the
// durable key-value store and the edge-visible cookie file. The access
// token goes to both so edge-side request interception can read
// identity; the refresh token never leaves the durable store.
//
// Either sink may be absent (nil durable store, no-op jar). All
// operations degrade to "absent" in that case and never panic.
type TokenStore struct {
	durable storage.ClientStorage
	edge    storage.EdgeStorage
	logger  *slog.Logger
}

// NewTokenStore creates a token store over the given sinks.
// Both sinks are optional.
func NewTokenStore(durable storage.ClientStorage, edge storage.EdgeStorage, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenStore{
		durable: durable,
		edge:    edge,
		logger:  logger,
	}
}

// SetAccessToken persists the access token to the durable store and
// writes the edge cookie with a 30-day expiry.
//
// Both sinks are always attempted; a failure in one does not roll back
// the other. Partial failures are joined and reported to the caller.
func (s *TokenStore) SetAccessToken(ctx context.Context, token string) error {
	var errs []error

	if s.durable != nil {
		if err := s.durable.Set(ctx, storage.KeyAccessToken, token); err != nil {
			errs = append(errs, err)
		}
	}

	if s.edge != nil {
		if err := s.edge.SetCookie(storage.KeyAccessToken, token, storage.CookieMaxAge); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SetRefreshToken persists the refresh token to the durable store only
func (s *TokenStore) SetRefreshToken(ctx context.Context, token string) error {
	if s.durable == nil {
		return nil
	}
	return s.durable.Set(ctx, storage.KeyRefreshToken, token)
}

// SaveTokens persists both tokens of the pair
func (s *TokenStore) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	return errors.Join(
		s.SetAccessToken(ctx, accessToken),
		s.SetRefreshToken(ctx, refreshToken),
	)
}

// AccessToken reads the access token: durable store first, cookie as
// fallback. Returns storage.ErrTokenNotFound when neither sink holds a
// value.
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	if s.durable != nil {
		token, err := s.durable.Get(ctx, storage.KeyAccessToken)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, storage.ErrTokenNotFound) {
			// Сломанное хранилище не должно блокировать чтение cookie
			s.logger.Debug("durable token read failed, trying cookie", "error", err)
		}
	}

	if s.edge != nil {
		token, err := s.edge.Cookie(storage.KeyAccessToken)
		if err == nil {
			return token, nil
		}
	}

	return "", storage.ErrTokenNotFound
}

// RefreshToken reads the refresh token from the durable store only
func (s *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	if s.durable == nil {
		return "", storage.ErrTokenNotFound
	}
	return s.durable.Get(ctx, storage.KeyRefreshToken)
}

// ClearAll removes both tokens from the durable store and expires the
// cookie immediately. Every sink is attempted regardless of earlier
// failures.
func (s *TokenStore) ClearAll(ctx context.Context) error {
	var errs []error

	if s.durable != nil {
		if err := s.durable.Delete(ctx, storage.KeyAccessToken); err != nil {
			errs = append(errs, err)
		}
		if err := s.durable.Delete(ctx, storage.KeyRefreshToken); err != nil {
			errs = append(errs, err)
		}
	}

	if s.edge != nil {
		if err := s.edge.ExpireCookie(storage.KeyAccessToken); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
