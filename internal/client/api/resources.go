package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iudanet/procure/pkg/api"
)

// ListParams describes a filtered, paginated list request
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// query renders the parameters as a URL query string
func (p ListParams) query() string {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	for k, v := range p.Filters {
		values.Set(k, v)
	}
	return values.Encode()
}

// CacheParams flattens the parameters for cache key canonicalization.
// Равные параметры обязаны давать равные ключи, поэтому состав map
// здесь полностью определяется содержимым ListParams.
func (p ListParams) CacheParams() map[string]string {
	params := make(map[string]string, len(p.Filters)+3)
	for k, v := range p.Filters {
		params[k] = v
	}
	if p.Page > 0 {
		params["page"] = strconv.Itoa(p.Page)
	}
	if p.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(p.PageSize)
	}
	if p.Search != "" {
		params["search"] = p.Search
	}
	return params
}

// Resource is a typed accessor for one REST collection under /api/v1.
// Every entity follows the same getAll/getById/create/update/delete
// surface, so one generic implementation covers them all.
type Resource[T any] struct {
	c    *Client
	path string
}

func newResource[T any](c *Client, slug string) *Resource[T] {
	return &Resource[T]{c: c, path: "/api/v1/" + slug}
}

// List возвращает страницу списка с пагинацией
func (r *Resource[T]) List(ctx context.Context, params ListParams) (*api.ListResponse[T], error) {
	path := r.path
	if q := params.query(); q != "" {
		path += "?" + q
	}

	var resp api.ListResponse[T]
	if err := r.c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s failed: %w", r.path, err)
	}
	return &resp, nil
}

// Get возвращает одну сущность по идентификатору
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var resp api.Response[T]
	if err := r.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s/%d failed: %w", r.path, id, err)
	}
	return &resp.Data, nil
}

// Create создает новую сущность
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var resp api.Response[T]
	if err := r.c.doRequest(ctx, http.MethodPost, r.path, body, &resp); err != nil {
		return nil, fmt.Errorf("create %s failed: %w", r.path, err)
	}
	return &resp.Data, nil
}

// Update обновляет существующую сущность
func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (*T, error) {
	var resp api.Response[T]
	if err := r.c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), body, &resp); err != nil {
		return nil, fmt.Errorf("update %s/%d failed: %w", r.path, id, err)
	}
	return &resp.Data, nil
}

// Delete удаляет сущность
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, nil); err != nil {
		return fmt.Errorf("delete %s/%d failed: %w", r.path, id, err)
	}
	return nil
}
