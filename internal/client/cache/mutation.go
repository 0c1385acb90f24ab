package cache

import "context"

// MutationFunc performs a write through the API layer
type MutationFunc func(ctx context.Context) (any, error)

// MutationOptions configures what happens around a mutation
type MutationOptions struct {
	// Invalidates lists the key subtrees to invalidate on success
	Invalidates []Key

	// OnSuccess runs after invalidation, with the mutation result
	OnSuccess func(result any)

	// OnError runs when the mutation fails terminally
	OnError func(err error)
}

// Mutate invokes fn and, on success, invalidates the configured key
// subtrees before firing OnSuccess. A failed mutation is retried
// exactly once; a second failure fires OnError and is returned. Cache
// state is never touched by a failed mutation.
func (s *Store) Mutate(ctx context.Context, fn MutationFunc, opts MutationOptions) (any, error) {
	result, err := fn(ctx)
	if err != nil {
		s.logger.Debug("mutation failed, retrying once", "error", err)
		result, err = fn(ctx)
	}
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return nil, err
	}

	if len(opts.Invalidates) > 0 {
		s.Invalidate(opts.Invalidates...)
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(result)
	}

	return result, nil
}
