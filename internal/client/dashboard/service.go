package dashboard

import (
	"context"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/client/cache"
	"github.com/iudanet/procure/pkg/api"
)

// ResourceService is the cached read/write surface for one resource
// kind. Reads go through the cache store; writes go through the API
// and invalidate the affected key subtrees on success:
//
//	create          -> [kind, "list"]
//	update / delete -> [kind, "list"] and [kind, "detail", id]
type ResourceService[T any] struct {
	store *cache.Store
	res   *httpClient.Resource[T]
	kind  string
}

// NewResourceService creates a service for one resource kind
func NewResourceService[T any](store *cache.Store, res *httpClient.Resource[T], kind string) *ResourceService[T] {
	return &ResourceService[T]{
		store: store,
		res:   res,
		kind:  kind,
	}
}

// List returns a page of the filtered listing. Stale pages serve the
// previous data while refetching so pagination does not flicker.
func (s *ResourceService[T]) List(ctx context.Context, params httpClient.ListParams) (*api.ListResponse[T], error) {
	key := cache.ListKey(s.kind, params.CacheParams())

	return cache.QueryAs(ctx, s.store, key, func(ctx context.Context) (*api.ListResponse[T], error) {
		return s.res.List(ctx, params)
	}, cache.KeepPrevious())
}

// Get returns a single entity by id
func (s *ResourceService[T]) Get(ctx context.Context, id int64) (*T, error) {
	key := cache.DetailKey(s.kind, id)

	return cache.QueryAs(ctx, s.store, key, func(ctx context.Context) (*T, error) {
		return s.res.Get(ctx, id)
	})
}

// Create writes a new entity and invalidates every cached listing of
// this kind
func (s *ResourceService[T]) Create(ctx context.Context, body any) (*T, error) {
	return cache.MutateAs(ctx, s.store, func(ctx context.Context) (*T, error) {
		return s.res.Create(ctx, body)
	}, cache.MutationOptions{
		Invalidates: []cache.Key{{s.kind, "list"}},
	})
}

// Update writes an entity and invalidates its detail entry plus every
// cached listing of this kind
func (s *ResourceService[T]) Update(ctx context.Context, id int64, body any) (*T, error) {
	return cache.MutateAs(ctx, s.store, func(ctx context.Context) (*T, error) {
		return s.res.Update(ctx, id, body)
	}, cache.MutationOptions{
		Invalidates: []cache.Key{
			{s.kind, "list"},
			cache.DetailKey(s.kind, id),
		},
	})
}

// Delete removes an entity and invalidates its detail entry plus every
// cached listing of this kind
func (s *ResourceService[T]) Delete(ctx context.Context, id int64) error {
	_, err := s.store.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.res.Delete(ctx, id)
	}, cache.MutationOptions{
		Invalidates: []cache.Key{
			{s.kind, "list"},
			cache.DetailKey(s.kind, id),
		},
	})
	return err
}
