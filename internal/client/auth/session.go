package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/procure/pkg/api"
)

// State описывает логическое состояние сессии
type State int

const (
	// StateUnknown - стартовое состояние до первого CheckAuth
	StateUnknown State = iota
	// StateAuthenticated - пользователь известен и токен валиден
	StateAuthenticated
	// StateUnauthenticated - сессии нет
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Маршруты, на которые сессия переводит пользователя после
// login/logout. Сами маршруты обслуживает внешний слой.
const (
	RouteLogin    = "/login"
	RouteProjects = "/dashboard/projects"
)

// AuthAPI defines the server operations the session depends on
type AuthAPI interface {
	// Login выполняет аутентификацию по email и паролю
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)

	// Logout инвалидирует сессию на сервере
	Logout(ctx context.Context) error

	// Refresh обменивает refresh token на новую пару токенов
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)

	// Me возвращает профиль текущего пользователя
	Me(ctx context.Context) (*api.User, error)
}

// Navigator receives navigation side effects from the session
type Navigator interface {
	NavigateTo(route string)
}

// Session holds the current-user state and is the sole writer of the
// token store. Route guards and UI read it; all writes go through
// CheckAuth/Login/Logout.
type Session struct {
	api    AuthAPI
	tokens *TokenStore
	nav    Navigator
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	user    *api.User
	state   State
	loading bool
}

// NewSession creates a session in the Unknown state.
// Navigator is optional.
func NewSession(apiClient AuthAPI, tokens *TokenStore, nav Navigator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:     apiClient,
		tokens:  tokens,
		nav:     nav,
		logger:  logger,
		now:     time.Now,
		state:   StateUnknown,
		loading: true,
	}
}

// CheckAuth validates the stored session at process start and returns
// the resulting state. No stored token means Unauthenticated without a
// single network call. An invalid token gets one refresh attempt;
// terminal failure clears all tokens. Loading always ends false.
func (s *Session) CheckAuth(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		s.user = nil
		s.state = StateUnauthenticated
		return s.state
	}

	// Заведомо истёкший токен обновляем до похода за профилем
	if exp, expErr := TokenExpiry(token); expErr == nil && s.now().After(exp) {
		if refreshErr := s.refreshLocked(ctx); refreshErr != nil {
			s.logger.Debug("token refresh failed", "error", refreshErr)
			s.clearLocked(ctx)
			return s.state
		}
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		// Одна попытка обновления, затем повторный запрос профиля
		if refreshErr := s.refreshLocked(ctx); refreshErr == nil {
			user, err = s.api.Me(ctx)
		}
	}
	if err != nil {
		s.logger.Info("stored session is no longer valid", "error", err)
		s.clearLocked(ctx)
		return s.state
	}

	s.user = user
	s.state = StateAuthenticated
	return s.state
}

// Login authenticates the user. On success both tokens are persisted,
// the user is set and navigation to the projects listing is signalled.
// On failure the error is propagated untouched and session state is
// left unchanged.
func (s *Session) Login(ctx context.Context, creds api.LoginRequest) (*api.User, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		// Сессия в памяти валидна, даже если один из sink недоступен
		s.logger.Warn("failed to persist tokens", "error", err)
	}

	user := resp.User
	s.user = &user
	s.state = StateAuthenticated
	s.loading = false

	if s.nav != nil {
		s.nav.NavigateTo(RouteProjects)
	}

	return &user, nil
}

// Logout notifies the server (best effort), clears tokens
// unconditionally and resets the session. The user must never stay
// logged in locally after requesting logout.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("failed to logout on server", "error", err)
	}

	clearErr := s.tokens.ClearAll(ctx)

	s.user = nil
	s.state = StateUnauthenticated
	s.loading = false

	if s.nav != nil {
		s.nav.NavigateTo(RouteLogin)
	}

	if clearErr != nil {
		return fmt.Errorf("failed to clear tokens: %w", clearErr)
	}
	return nil
}

// clearLocked wipes tokens and drops the session to Unauthenticated.
// Caller must hold s.mu.
func (s *Session) clearLocked(ctx context.Context) {
	if err := s.tokens.ClearAll(ctx); err != nil {
		s.logger.Warn("failed to clear tokens", "error", err)
	}
	s.user = nil
	s.state = StateUnauthenticated
}

// refreshLocked exchanges the refresh token for a new pair and persists
// it. Caller must hold s.mu.
func (s *Session) refreshLocked(ctx context.Context) error {
	refresh, err := s.tokens.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("no refresh token: %w", err)
	}

	resp, err := s.api.Refresh(ctx, refresh)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}

	if err := s.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	return nil
}

// User returns the current user or nil
func (s *Session) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a user is present
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsLoading reports whether the startup check is still in progress
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
