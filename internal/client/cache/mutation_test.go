package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateInvalidatesOnSuccess(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(t, WithClock(clock.Now))

	var listCalls atomic.Int64
	ctx := context.Background()

	_, err := s.Query(ctx, ListKey("projects", nil), countingFetch(&listCalls, "before", "after"))
	require.NoError(t, err)

	var gotResult any
	result, err := s.Mutate(ctx, func(ctx context.Context) (any, error) {
		return "created", nil
	}, MutationOptions{
		Invalidates: []Key{{"projects", "list"}},
		OnSuccess:   func(r any) { gotResult = r },
	})
	require.NoError(t, err)
	assert.Equal(t, "created", result)
	assert.Equal(t, "created", gotResult)

	// Следующий запрос списка обязан увидеть свежие данные
	v, err := s.Query(ctx, ListKey("projects", nil), countingFetch(&listCalls, "before", "after"))
	require.NoError(t, err)
	assert.Equal(t, "after", v)
}

func TestMutateRetriesOnce(t *testing.T) {
	s := newTestStore(t)

	var calls atomic.Int64
	result, err := s.Mutate(context.Background(), func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("temporary failure")
		}
		return "ok", nil
	}, MutationOptions{})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, int64(2), calls.Load())
}

func TestMutateFailureLeavesCacheUntouched(t *testing.T) {
	clock := newFakeClock()
	s := newTestStore(t, WithClock(clock.Now))

	var listCalls atomic.Int64
	ctx := context.Background()

	_, err := s.Query(ctx, ListKey("projects", nil), countingFetch(&listCalls, "before", "after"))
	require.NoError(t, err)

	sentinel := errors.New("server rejected")
	var calls atomic.Int64
	var gotErr error

	_, err = s.Mutate(ctx, func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, sentinel
	}, MutationOptions{
		Invalidates: []Key{{"projects", "list"}},
		OnError:     func(e error) { gotErr = e },
	})

	require.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, gotErr, sentinel)
	assert.Equal(t, int64(2), calls.Load())

	// Неудавшаяся мутация не инвалидирует кеш
	v, err := s.Query(ctx, ListKey("projects", nil), countingFetch(&listCalls, "before", "after"))
	require.NoError(t, err)
	assert.Equal(t, "before", v)
	assert.Equal(t, int64(1), listCalls.Load())
}

func TestQueryAsTypeMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := DetailKey("projects", 7)

	_, err := QueryAs(ctx, s, key, func(ctx context.Context) (string, error) {
		return "a string", nil
	})
	require.NoError(t, err)

	// Тот же ключ с другим типом - ошибка, не паника
	_, err = QueryAs(ctx, s, key, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache entry")
}

func TestMutateAsReturnsTypedResult(t *testing.T) {
	s := newTestStore(t)

	got, err := MutateAs(context.Background(), s, func(ctx context.Context) (int, error) {
		return 42, nil
	}, MutationOptions{})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
