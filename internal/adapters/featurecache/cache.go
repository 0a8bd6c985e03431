// Package featurecache persists fetched waterway features in badger so repeated
// regions do not hit the geodata service again.
package featurecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/zerr"
)

const keyPrefix = "ways/"

// Cache is a read-through ports.WaterwaySource backed by badger.
type Cache struct {
	db     *badger.DB
	source ports.WaterwaySource
	ttl    time.Duration
	logger ports.Logger
}

// Open opens the badger database at dir. An empty dir opens an in-memory database.
func Open(dir string, logger ports.Logger) (*badger.DB, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrFeatureCacheOpenFailed, err.Error()), "dir", dir)
		}
		opts = badger.DefaultOptions(dir).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFeatureCacheOpenFailed, err.Error()), "dir", dir)
	}
	return db, nil
}

// New wraps source with the cache stored in db. Entries expire after ttl.
func New(db *badger.DB, source ports.WaterwaySource, ttl time.Duration, logger ports.Logger) *Cache {
	if ttl <= 0 {
		ttl = domain.DefaultGraphCacheTTL
	}
	return &Cache{db: db, source: source, ttl: ttl, logger: logger}
}

// FetchWaterwayFeatures returns the cached ways for bound or fetches and stores them.
// Cache failures are logged and never fail the fetch.
func (c *Cache) FetchWaterwayFeatures(ctx context.Context, bound orb.Bound) ([]domain.Way, error) {
	key := Key(bound)

	ways, err := c.get(key)
	switch {
	case err == nil:
		return ways, nil
	case !errors.Is(err, badger.ErrKeyNotFound):
		c.warn(err)
	}

	ways, err = c.source.FetchWaterwayFeatures(ctx, bound)
	if err != nil {
		return nil, err
	}

	if err := c.put(key, ways); err != nil {
		c.warn(err)
	}
	return ways, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for bound.
func Key(bound orb.Bound) []byte {
	s := fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	return []byte(keyPrefix + strconv.FormatUint(xxhash.Sum64String(s), 16))
}

func (c *Cache) get(key []byte) ([]domain.Way, error) {
	var ways []domain.Way
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ways)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFeatureCacheReadFailed, err.Error()), "key", string(key))
	}
	return ways, nil
}

func (c *Cache) put(key []byte, ways []domain.Way) error {
	data, err := json.Marshal(ways)
	if err != nil {
		return zerr.Wrap(domain.ErrFeatureCacheWriteFailed, err.Error())
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(c.ttl))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFeatureCacheWriteFailed, err.Error()), "key", string(key))
	}
	return nil
}

func (c *Cache) warn(err error) {
	if c.logger != nil {
		c.logger.Warn(err.Error())
	}
}

type badgerLogger struct {
	logger ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Warn("feature cache: " + fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn("feature cache: " + fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(string, ...any) {}

func (l *badgerLogger) Debugf(string, ...any) {}
