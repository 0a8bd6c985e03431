package locks_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/engine/locks"
)

// Route along the equator, then north.
var route = orb.LineString{{0, 0}, {0.1, 0}, {0.1, 0.1}}

func lockAt(id int64, lon, lat float64) domain.LockRecord {
	return domain.LockRecord{ID: id, Name: "lock", Lon: lon, Lat: lat}
}

func TestFindLocksOnRoute_WithinBuffer(t *testing.T) {
	all := []domain.LockRecord{
		lockAt(1, 0.1003, 0.05), // beside the second segment
		lockAt(2, 0.05, 0.002),  // beside the first segment
		lockAt(3, 0.05, 0.05),   // far from both
	}

	hits := locks.FindLocksOnRoute(route, all, 500)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(2), hits[0].Lock.ID)
	assert.Zero(t, hits[0].DistanceFromStartMeters)
	assert.InDelta(t, 222, hits[0].DistanceFromRouteMeters, 1)

	assert.Equal(t, int64(1), hits[1].Lock.ID)
	assert.Equal(t, math.Round(geo.HaversineMeters(route[0], route[1])), hits[1].DistanceFromStartMeters)
	assert.InDelta(t, 33, hits[1].DistanceFromRouteMeters, 1)
}

func TestFindLocksOnRoute_ZeroBuffer(t *testing.T) {
	hits := locks.FindLocksOnRoute(route, []domain.LockRecord{lockAt(1, 0.05, 0.0001)}, 0)
	assert.Empty(t, hits)
}

func TestFindLocksOnRoute_InfiniteBufferReturnsAll(t *testing.T) {
	all := []domain.LockRecord{
		lockAt(1, 10, 10),
		lockAt(2, -120, 45),
		lockAt(3, 0.05, 0),
	}

	hits := locks.FindLocksOnRoute(route, all, math.Inf(1))
	assert.Len(t, hits, 3)
}

func TestFindLocksOnRoute_StableOrderAndDuplicates(t *testing.T) {
	all := []domain.LockRecord{
		lockAt(5, 0.02, 0.001),
		lockAt(4, 0.03, 0.001),
		lockAt(5, 0.02, 0.001),
	}

	hits := locks.FindLocksOnRoute(route, all, 500)
	require.Len(t, hits, 3)
	assert.Equal(t, []int64{5, 4, 5}, []int64{hits[0].Lock.ID, hits[1].Lock.ID, hits[2].Lock.ID})
}

func TestFindLocksOnRoute_SinglePointRoute(t *testing.T) {
	hits := locks.FindLocksOnRoute(orb.LineString{{0, 0}}, []domain.LockRecord{lockAt(1, 0.001, 0)}, 500)
	require.Len(t, hits, 1)
	assert.InDelta(t, 111, hits[0].DistanceFromRouteMeters, 1)
	assert.Zero(t, hits[0].DistanceFromStartMeters)
}

func TestFindLocksOnRoute_EmptyInputs(t *testing.T) {
	assert.Nil(t, locks.FindLocksOnRoute(nil, []domain.LockRecord{lockAt(1, 0, 0)}, 500))
	assert.Nil(t, locks.FindLocksOnRoute(route, nil, 500))
}
