// Package cache implements the client-side data cache: a hierarchical
// key space over resource queries with request deduplication,
// retry-with-backoff on fetches, prefix invalidation and idle eviction.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// Defaults per the dashboard's freshness model: a minute of freshness,
// five minutes of idle lifetime.
const (
	DefaultStaleAfter  = 60 * time.Second
	DefaultEvictAfter  = 5 * time.Minute
	defaultSweepEvery  = time.Minute
	defaultBackoffBase = time.Second
	defaultBackoffCap  = 30 * time.Second
	defaultMaxRetries  = 3
)

// FetchFunc loads the value for a key from the network
type FetchFunc func(ctx context.Context) (any, error)

// Store is the process-wide query cache. It is created once per
// application lifetime and injected into every consumer; entries are
// only ever mutated through its API.
type Store struct {
	logger *slog.Logger
	clock  func() time.Time

	staleAfter  time.Duration
	evictAfter  time.Duration
	sweepEvery  time.Duration
	backoffBase time.Duration
	backoffCap  time.Duration
	maxRetries  uint64

	group singleflight.Group

	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*inflightFetch

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	key       Key
	data      any
	fetchedAt time.Time
	lastUsed  time.Time
	invalid   bool
}

// inflightFetch tracks an active fetch for a key. Invalidation that
// lands while the fetch is suspended at the network is recorded here so
// the stored result does not resurrect pre-mutation data.
type inflightFetch struct {
	key         Key
	count       int
	invalidated bool
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithStaleAfter overrides the freshness threshold
func WithStaleAfter(d time.Duration) Option {
	return func(s *Store) { s.staleAfter = d }
}

// WithEvictAfter overrides the idle eviction threshold
func WithEvictAfter(d time.Duration) Option {
	return func(s *Store) { s.evictAfter = d }
}

// WithBackoff overrides the fetch retry backoff (base delay and cap)
func WithBackoff(base, cap time.Duration) Option {
	return func(s *Store) {
		s.backoffBase = base
		s.backoffCap = cap
	}
}

// WithMaxRetries overrides the number of fetch retries after the
// initial attempt
func WithMaxRetries(n uint64) Option {
	return func(s *Store) { s.maxRetries = n }
}

// WithClock overrides the time source (tests)
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store and starts its eviction janitor
func New(opts ...Option) *Store {
	s := &Store{
		logger:      slog.Default(),
		clock:       time.Now,
		staleAfter:  DefaultStaleAfter,
		evictAfter:  DefaultEvictAfter,
		sweepEvery:  defaultSweepEvery,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
		maxRetries:  defaultMaxRetries,
		entries:     make(map[string]*entry),
		inflight:    make(map[string]*inflightFetch),
		stop:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.janitor()

	return s
}

// Close stops the eviction janitor
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

type queryOptions struct {
	keepPrevious bool
}

// QueryOption configures a single Query call
type QueryOption func(*queryOptions)

// KeepPrevious makes a stale entry serve its last-known value
// immediately while a background refetch runs. Used by paginated lists
// to avoid flicker. Invalidated entries never serve previous data -
// invalidation must be observable by the next query.
func KeepPrevious() QueryOption {
	return func(o *queryOptions) { o.keepPrevious = true }
}

// Query returns the cached value for key if it is fresh, otherwise
// fetches it. Concurrent queries for an identical key are coalesced
// into a single fetch and all waiters observe the same value or the
// same error.
func (s *Store) Query(ctx context.Context, key Key, fetch FetchFunc, opts ...QueryOption) (any, error) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	mk := key.mapKey()
	now := s.clock()

	s.mu.Lock()
	if e := s.entries[mk]; e != nil && !e.invalid {
		if now.Sub(e.fetchedAt) < s.staleAfter {
			e.lastUsed = now
			data := e.data
			s.mu.Unlock()
			return data, nil
		}
		if o.keepPrevious {
			e.lastUsed = now
			prev := e.data
			s.mu.Unlock()
			s.refreshAsync(key, fetch)
			return prev, nil
		}
	}
	s.mu.Unlock()

	return s.fetch(ctx, key, fetch)
}

// Invalidate marks every entry whose key extends one of the given
// prefixes, forcing the next query on that subtree to refetch. Fetches
// already in flight for a matching key are marked too: their result is
// stored stale, so the invalidation stays observable by the next query.
func (s *Store) Invalidate(prefixes ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				e.invalid = true
				break
			}
		}
	}

	for _, f := range s.inflight {
		for _, p := range prefixes {
			if f.key.HasPrefix(p) {
				f.invalidated = true
				break
			}
		}
	}
}

// Len returns the number of cached entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// fetch runs the deduplicated, retried network load for key
func (s *Store) fetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	mk := key.mapKey()

	// Запись с активным fetch не должна быть вытеснена janitor'ом
	s.mu.Lock()
	f := s.inflight[mk]
	if f == nil {
		f = &inflightFetch{key: key}
		s.inflight[mk] = f
	}
	f.count++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if f.count--; f.count <= 0 {
			delete(s.inflight, mk)
		}
		s.mu.Unlock()
	}()

	v, err, _ := s.group.Do(mk, func() (any, error) {
		data, err := s.fetchWithRetry(ctx, key, fetch)
		if err != nil {
			return nil, err
		}

		now := s.clock()
		s.mu.Lock()
		// Инвалидация, совпавшая с активным fetch, сохраняется:
		// результат ложится в кеш уже недействительным
		s.entries[mk] = &entry{key: key, data: data, fetchedAt: now, lastUsed: now, invalid: f.invalidated}
		s.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// fetchWithRetry retries a failed fetch with exponential backoff
// (base 1s doubling, capped at 30s) before surfacing the error
func (s *Store) fetchWithRetry(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	var data any
	attempt := 0

	backoff := retry.WithMaxRetries(s.maxRetries,
		retry.WithCappedDuration(s.backoffCap,
			retry.NewExponential(s.backoffBase)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := fetch(ctx)
		if err != nil {
			s.logger.Debug("fetch attempt failed",
				"key", key.String(), "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		data = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", key, err)
	}

	return data, nil
}

// refreshAsync refetches a stale entry in the background. The refresh
// deliberately detaches from the caller's context: the caller already
// got its answer.
func (s *Store) refreshAsync(key Key, fetch FetchFunc) {
	go func() {
		if _, err := s.fetch(context.Background(), key, fetch); err != nil {
			s.logger.Debug("background refresh failed",
				"key", key.String(), "error", err)
		}
	}()
}

// janitor evicts entries unused longer than the idle threshold
func (s *Store) janitor() {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) sweep() {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	for mk, e := range s.entries {
		if _, busy := s.inflight[mk]; busy {
			continue
		}
		if now.Sub(e.lastUsed) >= s.evictAfter {
			delete(s.entries, mk)
		}
	}
}
