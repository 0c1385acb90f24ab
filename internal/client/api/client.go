package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/procure/pkg/api"
)

// TokenSource supplies the access token attached to every request.
// Implemented by auth.TokenStore.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *slog.Logger

	// Типизированные ресурсы закупочного контура
	Projects       *Resource[api.Project]
	Suppliers      *Resource[api.Supplier]
	Materials      *Resource[api.Material]
	PurchaseOrders *Resource[api.PurchaseOrder]
	Invoices       *Resource[api.Invoice]
	Payments       *Resource[api.Payment]
	Inventory      *Resource[api.InventoryItem]
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithTokenSource attaches a token source for the Authorization header
func WithTokenSource(tokens TokenSource) ClientOption {
	return func(c *Client) { c.tokens = tokens }
}

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Projects = newResource[api.Project](c, "projects")
	c.Suppliers = newResource[api.Supplier](c, "suppliers")
	c.Materials = newResource[api.Material](c, "materials")
	c.PurchaseOrders = newResource[api.PurchaseOrder](c, "purchase-orders")
	c.Invoices = newResource[api.Invoice](c, "invoices")
	c.Payments = newResource[api.Payment](c, "payments")
	c.Inventory = newResource[api.InventoryItem](c, "inventory")

	return c
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	if c.tokens != nil {
		if token, tokenErr := c.tokens.AccessToken(ctx); tokenErr == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("server returned error",
			"method", method, "path", path, "status", resp.StatusCode)
		return c.decodeError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError разбирает тело ошибки в problem details; тело
// произвольного вида сворачивается в Detail
func (c *Client) decodeError(statusCode int, body []byte) error {
	apiErr := &Error{StatusCode: statusCode}

	if err := json.Unmarshal(body, &apiErr.Problem); err != nil || apiErr.Problem.Title == "" {
		apiErr.Problem = api.ErrorResponse{
			Title:  http.StatusText(statusCode),
			Status: statusCode,
			Detail: string(bytes.TrimSpace(body)),
		}
	}

	return apiErr
}
