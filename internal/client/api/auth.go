package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/procure/pkg/api"
)

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.Response[api.LoginResponse]
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp.Data, nil
}

// Logout инвалидирует сессию на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	req := api.RefreshRequest{RefreshToken: refreshToken}

	var resp api.Response[api.TokenResponse]
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp.Data, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var resp api.Response[api.User]
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp.Data, nil
}
