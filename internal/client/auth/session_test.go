package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/procure/internal/client/storage"
	"github.com/iudanet/procure/pkg/api"
)

// mockAuthAPI реализует AuthAPI с управляемыми ответами
type mockAuthAPI struct {
	loginResp *api.LoginResponse
	loginErr  error

	logoutErr error

	refreshResp *api.TokenResponse
	refreshErr  error

	meUser *api.User
	meErr  error
	// meErrOnce fails only the first Me call
	meErrOnce error

	loginCalls   int
	logoutCalls  int
	refreshCalls int
	meCalls      int
}

func (m *mockAuthAPI) Login(_ context.Context, _ api.LoginRequest) (*api.LoginResponse, error) {
	m.loginCalls++
	return m.loginResp, m.loginErr
}

func (m *mockAuthAPI) Logout(_ context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}

func (m *mockAuthAPI) Refresh(_ context.Context, _ string) (*api.TokenResponse, error) {
	m.refreshCalls++
	return m.refreshResp, m.refreshErr
}

func (m *mockAuthAPI) Me(_ context.Context) (*api.User, error) {
	m.meCalls++
	if m.meErrOnce != nil {
		err := m.meErrOnce
		m.meErrOnce = nil
		return nil, err
	}
	return m.meUser, m.meErr
}

// mockNavigator записывает маршруты
type mockNavigator struct {
	routes []string
}

func (m *mockNavigator) NavigateTo(route string) {
	m.routes = append(m.routes, route)
}

func newSessionFixture(mock *mockAuthAPI) (*Session, *TokenStore, *mockNavigator) {
	tokens := NewTokenStore(newMockDurable(), newMockEdge(), nil)
	nav := &mockNavigator{}
	return NewSession(mock, tokens, nav, nil), tokens, nav
}

func validToken(t *testing.T) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func expiredToken(t *testing.T) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
}

func TestCheckAuthNoTokenSkipsNetwork(t *testing.T) {
	mock := &mockAuthAPI{}
	s, _, _ := newSessionFixture(mock)

	state := s.CheckAuth(context.Background())

	assert.Equal(t, StateUnauthenticated, state)
	assert.Zero(t, mock.meCalls)
	assert.Zero(t, mock.refreshCalls)
	assert.False(t, s.IsLoading())
}

func TestCheckAuthValidToken(t *testing.T) {
	user := &api.User{UserID: 1, Email: "buyer@example.com"}
	mock := &mockAuthAPI{meUser: user}
	s, tokens, _ := newSessionFixture(mock)
	require.NoError(t, tokens.SaveTokens(context.Background(), validToken(t), "refresh-1"))

	state := s.CheckAuth(context.Background())

	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, user, s.User())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, mock.meCalls)
	assert.Zero(t, mock.refreshCalls)
}

func TestCheckAuthExpiredTokenRefreshesFirst(t *testing.T) {
	user := &api.User{UserID: 1}
	mock := &mockAuthAPI{
		meUser: user,
		refreshResp: &api.TokenResponse{
			AccessToken:  validToken(t),
			RefreshToken: "refresh-2",
		},
	}
	s, tokens, _ := newSessionFixture(mock)
	require.NoError(t, tokens.SaveTokens(context.Background(), expiredToken(t), "refresh-1"))

	state := s.CheckAuth(context.Background())

	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, 1, mock.refreshCalls)
	assert.Equal(t, 1, mock.meCalls)

	// Обновлённая пара сохранена
	refresh, err := tokens.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", refresh)
}

func TestCheckAuthRetriesMeAfterRefresh(t *testing.T) {
	user := &api.User{UserID: 1}
	mock := &mockAuthAPI{
		meUser:    user,
		meErrOnce: errors.New("401 unauthorized"),
		refreshResp: &api.TokenResponse{
			AccessToken:  validToken(t),
			RefreshToken: "refresh-2",
		},
	}
	s, tokens, _ := newSessionFixture(mock)
	require.NoError(t, tokens.SaveTokens(context.Background(), validToken(t), "refresh-1"))

	state := s.CheckAuth(context.Background())

	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, 1, mock.refreshCalls)
	assert.Equal(t, 2, mock.meCalls)
}

func TestCheckAuthTerminalFailureClearsTokens(t *testing.T) {
	mock := &mockAuthAPI{
		meErr:      errors.New("401 unauthorized"),
		refreshErr: errors.New("refresh token revoked"),
	}
	s, tokens, _ := newSessionFixture(mock)
	require.NoError(t, tokens.SaveTokens(context.Background(), validToken(t), "refresh-1"))

	state := s.CheckAuth(context.Background())

	assert.Equal(t, StateUnauthenticated, state)
	assert.Nil(t, s.User())

	_, err := tokens.AccessToken(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = tokens.RefreshToken(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestLoginSuccess(t *testing.T) {
	user := api.User{UserID: 5, Email: "buyer@example.com", UserName: "Buyer"}
	mock := &mockAuthAPI{
		loginResp: &api.LoginResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
			User:         user,
		},
	}
	s, tokens, nav := newSessionFixture(mock)

	got, err := s.Login(context.Background(), api.LoginRequest{
		Email:    "buyer@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, &user, got)
	assert.Equal(t, StateAuthenticated, s.State())
	assert.False(t, s.IsLoading())

	access, err := tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", access)

	refresh, err := tokens.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)

	assert.Equal(t, []string{RouteProjects}, nav.routes)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	sentinel := errors.New("invalid credentials")
	mock := &mockAuthAPI{loginErr: sentinel}
	s, tokens, nav := newSessionFixture(mock)

	_, err := s.Login(context.Background(), api.LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong-password",
	})

	// Ошибка сервера доходит до вызывающего без изменений
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, StateUnknown, s.State())
	assert.Empty(t, nav.routes)

	_, err = tokens.AccessToken(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestLogoutClearsTokensEvenWhenServerFails(t *testing.T) {
	user := api.User{UserID: 5}
	mock := &mockAuthAPI{
		loginResp: &api.LoginResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         user,
		},
		logoutErr: errors.New("server unreachable"),
	}
	s, tokens, nav := newSessionFixture(mock)

	_, err := s.Login(context.Background(), api.LoginRequest{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	// Недоступный сервер не мешает локальному выходу
	err = s.Logout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.Equal(t, 1, mock.logoutCalls)

	_, err = tokens.AccessToken(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	assert.Equal(t, []string{RouteProjects, RouteLogin}, nav.routes)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
}
