package cache

import (
	"context"
	"fmt"
)

// QueryAs is the typed form of Store.Query
func QueryAs[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error), opts ...QueryOption) (T, error) {
	var zero T

	v, err := s.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts...)
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		// Один и тот же ключ обязан всегда нести один и тот же тип
		return zero, fmt.Errorf("cache entry %s holds %T, want %T", key, v, zero)
	}

	return out, nil
}

// MutateAs is the typed form of Store.Mutate
func MutateAs[T any](ctx context.Context, s *Store, fn func(ctx context.Context) (T, error), opts MutationOptions) (T, error) {
	var zero T

	v, err := s.Mutate(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, opts)
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("mutation result holds %T, want %T", v, zero)
	}

	return out, nil
}
