// Package graphstore builds regional waterway graphs and caches them in memory.
package graphstore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxEntries bounds the number of region graphs kept in memory.
const DefaultMaxEntries = 256

// Store caches region graphs keyed by rounded center and radius.
// Concurrent requests for the same region share a single build, which is
// cancelled once every caller waiting on it has gone.
type Store struct {
	source     ports.WaterwaySource
	logger     ports.Logger
	ttl        time.Duration
	maxEntries int
	penalties  domain.WaterwayPenalties
	now        func() time.Time

	mu      sync.RWMutex
	entries map[domain.RegionKey]*domain.RegionCacheEntry
	group   singleflight.Group

	flightMu sync.Mutex
	flights  map[domain.RegionKey]*flight

	hits     atomic.Int64
	misses   atomic.Int64
	builds   atomic.Int64
	failures atomic.Int64
	metrics  *storeMetrics
}

// flight is an in-progress build and the number of callers waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Stats is a snapshot of the store counters.
type Stats struct {
	Entries       int
	Hits          int64
	Misses        int64
	Builds        int64
	FetchFailures int64
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long a built graph is served. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries caps the number of cached graphs. The oldest graph is evicted
// first. Non-positive values are ignored.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithPenalties scales edge costs of built graphs by waterway kind.
func WithPenalties(p domain.WaterwayPenalties) Option {
	return func(s *Store) {
		s.penalties = p
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store that fetches ways from source.
func New(source ports.WaterwaySource, logger ports.Logger, opts ...Option) *Store {
	s := &Store{
		source:     source,
		logger:     logger,
		ttl:        domain.DefaultGraphCacheTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		entries:    make(map[domain.RegionKey]*domain.RegionCacheEntry),
		flights:    make(map[domain.RegionKey]*flight),
		metrics:    newStoreMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrBuildGraph returns the graph for the region around center.
// A fetch failure yields an empty graph that is not cached; only cancellation of ctx
// is reported as an error.
func (s *Store) GetOrBuildGraph(ctx context.Context, center orb.Point, radiusKm float64) (*domain.Graph, error) {
	key := domain.NewRegionKey(center, radiusKm)

	if g, ok := s.lookup(key); ok {
		s.hits.Add(1)
		s.metrics.hit(ctx)
		return g, nil
	}
	s.misses.Add(1)
	s.metrics.miss(ctx)

	f := s.join(ctx, key)
	defer s.leave(key, f)

	ch := s.group.DoChan(key.String(), func() (any, error) {
		if g, ok := s.lookup(key); ok {
			return g, nil
		}
		return s.build(f.ctx, key, center)
	})

	select {
	case <-ctx.Done():
		return nil, zerr.Wrap(ctx.Err(), "graph build cancelled")
	case res := <-ch:
		if res.Err != nil {
			if ctx.Err() != nil {
				return nil, zerr.Wrap(ctx.Err(), "graph build cancelled")
			}
			return nil, res.Err
		}
		return res.Val.(*domain.Graph), nil
	}
}

// join registers the caller on the build for key, starting a new build context when
// none is in flight. The build context keeps the caller's values but not its deadline.
func (s *Store) join(ctx context.Context, key domain.RegionKey) *flight {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()

	f, ok := s.flights[key]
	if !ok {
		bctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: bctx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++
	return f
}

// leave drops the caller from the build for key. The last caller out cancels the
// build and forgets it, so a later request starts afresh.
func (s *Store) leave(key domain.RegionKey, f *flight) {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if s.flights[key] == f {
		delete(s.flights, key)
	}
	s.group.Forget(key.String())
}

func (s *Store) lookup(key domain.RegionKey) (*domain.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || !entry.Fresh(s.now()) {
		return nil, false
	}
	return entry.Graph, true
}

func (s *Store) build(ctx context.Context, key domain.RegionKey, center orb.Point) (*domain.Graph, error) {
	bound := geo.BoundAround(center, key.RadiusKm)

	ways, err := s.source.FetchWaterwayFeatures(ctx, bound)
	if err != nil {
		if ctx.Err() != nil {
			return nil, zerr.Wrap(ctx.Err(), "graph build abandoned")
		}
		s.failures.Add(1)
		s.metrics.failure(ctx)
		s.logger.Error(zerr.With(zerr.Wrap(err, "waterway fetch failed, using empty graph"), "region", key.String()))
		return domain.NewGraph(), nil
	}

	g := domain.BuildGraphWith(ways, s.penalties)
	s.builds.Add(1)
	s.metrics.built(ctx, g)

	now := s.now()
	s.mu.Lock()
	s.entries[key] = &domain.RegionCacheEntry{Graph: g, BuiltAt: now, TTL: s.ttl}
	s.evictLocked(now)
	s.mu.Unlock()

	return g, nil
}

// evictLocked drops expired entries, then the oldest ones beyond the cap.
func (s *Store) evictLocked(now time.Time) int {
	removed := 0
	for k, e := range s.entries {
		if !e.Fresh(now) {
			delete(s.entries, k)
			removed++
		}
	}
	for len(s.entries) > s.maxEntries {
		var (
			oldest   domain.RegionKey
			oldestAt time.Time
			found    bool
		)
		for k, e := range s.entries {
			if !found || e.BuiltAt.Before(oldestAt) {
				oldest, oldestAt, found = k, e.BuiltAt, true
			}
		}
		delete(s.entries, oldest)
		removed++
	}
	return removed
}

// Stats returns the current counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Entries:       n,
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Builds:        s.builds.Load(),
		FetchFailures: s.failures.Load(),
	}
}

// Prune drops expired entries and returns how many were removed.
func (s *Store) Prune() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evictLocked(now)
}
