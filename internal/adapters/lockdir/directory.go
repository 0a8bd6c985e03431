// Package lockdir serves lock records from a JSON file.
package lockdir

import (
	"cmp"
	"context"
	"encoding/json"
	"os"
	"slices"
	"sync"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/zerr"
)

// Directory implements ports.LockDirectory over an in-memory snapshot of a lock file.
// The snapshot is replaced atomically on Reload.
type Directory struct {
	path string

	mu    sync.RWMutex
	locks []domain.LockRecord
	byID  map[int64]int
}

// Load reads the lock file at path.
func Load(path string) (*Directory, error) {
	d := &Directory{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// New creates a Directory holding locks, for callers that already have the records.
func New(locks []domain.LockRecord) *Directory {
	d := &Directory{}
	d.replace(locks)
	return d
}

// Path returns the backing file, empty for in-memory directories.
func (d *Directory) Path() string {
	return d.path
}

// Reload re-reads the backing file. On failure the previous snapshot stays in place.
func (d *Directory) Reload() error {
	locks, err := readFile(d.path)
	if err != nil {
		return err
	}
	d.replace(locks)
	return nil
}

// Len returns the number of locks.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.locks)
}

// LocksNear returns every lock inside bound, ordered by id.
func (d *Directory) LocksNear(ctx context.Context, bound orb.Bound) ([]domain.LockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []domain.LockRecord
	for _, l := range d.locks {
		if bound.Contains(l.Point()) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Lock returns the lock with the given id.
func (d *Directory) Lock(ctx context.Context, id int64) (*domain.LockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.byID[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockNotFound, "unknown lock id"), "id", id)
	}
	l := d.locks[i]
	return &l, nil
}

// Nearby returns the locks within radiusKm of center, nearest first.
func (d *Directory) Nearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error) {
	candidates, err := d.LocksNear(ctx, geo.BoundAround(center, radiusKm))
	if err != nil {
		return nil, err
	}

	limit := radiusKm * 1000
	out := make([]domain.NearbyLock, 0, len(candidates))
	for _, l := range candidates {
		dist := geo.HaversineMeters(center, l.Point())
		if dist <= limit {
			out = append(out, domain.NearbyLock{Lock: l, DistanceMeters: dist})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.NearbyLock) int {
		return cmp.Or(cmp.Compare(a.DistanceMeters, b.DistanceMeters), cmp.Compare(a.Lock.ID, b.Lock.ID))
	})
	return out, nil
}

func (d *Directory) replace(locks []domain.LockRecord) {
	locks = slices.Clone(locks)
	domain.SortLocks(locks)
	byID := make(map[int64]int, len(locks))
	for i, l := range locks {
		byID[l.ID] = i
	}

	d.mu.Lock()
	d.locks, d.byID = locks, byID
	d.mu.Unlock()
}

// lockFile accepts either a bare array of records or an object with a "locks" array.
type lockFile struct {
	Locks []domain.LockRecord `json:"locks"`
}

func readFile(path string) ([]domain.LockRecord, error) {
	//nolint:gosec // Path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFileReadFailed, err.Error()), "file", path)
	}

	var locks []domain.LockRecord
	if err := json.Unmarshal(data, &locks); err == nil {
		return locks, nil
	}

	var wrapped lockFile
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFileParseFailed, err.Error()), "file", path)
	}
	return wrapped.Locks, nil
}
