// Package locks maps lock records onto routes and evaluates their schedules.
package locks

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
)

// FindLocksOnRoute returns the locks within bufferMeters of route, ordered by
// distance from the route start. Locks at equal distance keep their input order.
func FindLocksOnRoute(route orb.LineString, locks []domain.LockRecord, bufferMeters float64) []domain.LockHit {
	if len(route) == 0 || len(locks) == 0 || math.IsNaN(bufferMeters) || bufferMeters < 0 {
		return nil
	}

	bound := geo.PadMeters(route.Bound(), bufferMeters)
	before := cumulativeLengths(route)

	var hits []domain.LockHit
	for _, l := range locks {
		p := l.Point()
		if !bound.Contains(p) {
			continue
		}

		dist, seg := nearestSegment(route, p)
		if dist > bufferMeters {
			continue
		}
		hits = append(hits, domain.LockHit{
			Lock:                    l,
			DistanceFromStartMeters: math.Round(before[seg]),
			DistanceFromRouteMeters: math.Round(dist),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].DistanceFromStartMeters < hits[j].DistanceFromStartMeters
	})
	return hits
}

// nearestSegment returns the smallest distance from p to route and the index of the
// first segment reaching it. A single-point route has one zero-length segment.
func nearestSegment(route orb.LineString, p orb.Point) (float64, int) {
	if len(route) == 1 {
		return geo.HaversineMeters(p, route[0]), 0
	}
	best, idx := math.Inf(1), 0
	for i := 1; i < len(route); i++ {
		if d := geo.PointToSegmentDistanceMeters(p, route[i-1], route[i]); d < best {
			best, idx = d, i-1
		}
	}
	return best, idx
}

// cumulativeLengths returns, for each segment index, the route length before it.
func cumulativeLengths(route orb.LineString) []float64 {
	out := make([]float64, max(1, len(route)))
	for i := 1; i < len(route)-1; i++ {
		out[i] = out[i-1] + geo.HaversineMeters(route[i-1], route[i])
	}
	return out
}
