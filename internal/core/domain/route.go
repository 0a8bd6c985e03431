package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/zerr"
)

// MetersPerNauticalMile converts metres to nautical miles.
const MetersPerNauticalMile = 1852.0

// RoutingType identifies which tier produced a route.
type RoutingType string

const (
	// RoutingPrimaryNetwork is a route from the external network router.
	RoutingPrimaryNetwork RoutingType = "primary_network"
	// RoutingGraphSearch is a route from A* over the regional waterway graph.
	RoutingGraphSearch RoutingType = "graph_search"
	// RoutingDirectLine is the straight-line fallback.
	RoutingDirectLine RoutingType = "direct"
)

// BoatProfile describes the vessel a route is planned for.
// Zero values mean unknown.
type BoatProfile struct {
	DraftM   float64
	HeightM  float64
	BeamM    float64
	SpeedKmh float64
}

// Restrictions echoes the positive boat dimensions, or nil when none is set.
func (b *BoatProfile) Restrictions() *BoatRestrictions {
	if b == nil || (b.DraftM <= 0 && b.HeightM <= 0 && b.BeamM <= 0) {
		return nil
	}
	r := &BoatRestrictions{}
	if b.DraftM > 0 {
		r.DraftM = b.DraftM
	}
	if b.HeightM > 0 {
		r.HeightM = b.HeightM
	}
	if b.BeamM > 0 {
		r.BeamM = b.BeamM
	}
	return r
}

// BoatRestrictions are the dimensions a router was asked to respect.
type BoatRestrictions struct {
	DraftM  float64 `json:"draft,omitempty"`
	HeightM float64 `json:"height,omitempty"`
	BeamM   float64 `json:"beam,omitempty"`
}

// RouteRequest is the input of a planning call.
type RouteRequest struct {
	Waypoints []orb.Point
	Boat      *BoatProfile
	// Departure enables lock availability warnings when set.
	Departure *time.Time
}

// Validate rejects requests with fewer than two waypoints or invalid coordinates.
func (r RouteRequest) Validate() error {
	if len(r.Waypoints) < 2 {
		return zerr.With(zerr.Wrap(ErrInvalidInput, "at least two waypoints required"), "waypoints", len(r.Waypoints))
	}
	for i, p := range r.Waypoints {
		if !ValidPoint(p) {
			err := zerr.With(zerr.Wrap(ErrInvalidInput, "waypoint out of range"), "index", i)
			return zerr.With(err, "point", fmt.Sprintf("%v,%v", p.Lon(), p.Lat()))
		}
	}
	if r.Boat != nil && (math.IsNaN(r.Boat.SpeedKmh) || math.IsInf(r.Boat.SpeedKmh, 0) || r.Boat.SpeedKmh < 0) {
		return zerr.With(zerr.Wrap(ErrInvalidInput, "boat speed must be finite and non-negative"), "boat_speed_kmh", r.Boat.SpeedKmh)
	}
	return nil
}

// ValidPoint reports whether p holds finite WGS84 coordinates.
func ValidPoint(p orb.Point) bool {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// InfrastructureKind tags a named object reported by the primary router.
type InfrastructureKind string

const (
	// InfrastructureLock is a lock named in a route step.
	InfrastructureLock InfrastructureKind = "lock"
	// InfrastructureBridge is a bridge named in a route step.
	InfrastructureBridge InfrastructureKind = "bridge"
)

// Infrastructure is a lock or bridge recognised in the primary router's step names.
type Infrastructure struct {
	Kind                    InfrastructureKind `json:"kind"`
	Name                    string             `json:"name"`
	Point                   orb.Point          `json:"-"`
	DistanceFromStartMeters float64            `json:"distance_from_start"`
}

// SegmentMethod tells how one waypoint pair was routed by the graph tier.
type SegmentMethod string

const (
	// SegmentGraph means the pair was routed over the waterway graph.
	SegmentGraph SegmentMethod = "graph"
	// SegmentDirect means the pair fell back to a straight line.
	SegmentDirect SegmentMethod = "direct"
)

// SegmentInfo records the outcome for one consecutive waypoint pair.
type SegmentInfo struct {
	From           int           `json:"from"`
	To             int           `json:"to"`
	Method         SegmentMethod `json:"method"`
	DistanceMeters float64       `json:"distance_m"`
	Reason         string        `json:"reason,omitempty"`
}

// TierAttempt records a tier that was tried and did not win.
type TierAttempt struct {
	Tier   RoutingType `json:"tier"`
	Reason string      `json:"reason"`
}

// RouteResult is the immutable outcome of a planning call.
type RouteResult struct {
	Geometry          orb.LineString
	DistanceMeters    float64
	DurationSeconds   *float64
	RoutingType       RoutingType
	WaterwayRouted    bool
	BoatRestrictions  *BoatRestrictions
	Infrastructure    []Infrastructure
	Segments          []SegmentInfo
	Locks             []LockHit
	LockWarnings      []LockWarning
	CurrentAdjustment *CurrentAdjustment
	Attempts          []TierAttempt
}

// DistanceNauticalMiles returns the route length in nautical miles.
func (r *RouteResult) DistanceNauticalMiles() float64 {
	return r.DistanceMeters / MetersPerNauticalMile
}

// EffectiveDurationSeconds returns the current-adjusted duration when present,
// else the base duration, else 0.
func (r *RouteResult) EffectiveDurationSeconds() float64 {
	if r.CurrentAdjustment != nil {
		return r.CurrentAdjustment.AdjustedHours * 3600
	}
	if r.DurationSeconds != nil {
		return *r.DurationSeconds
	}
	return 0
}

// DirectLine builds the straight-line route through all waypoints.
// Identical consecutive waypoints are kept so the geometry always has every waypoint.
func DirectLine(waypoints []orb.Point) (orb.LineString, float64) {
	line := make(orb.LineString, len(waypoints))
	copy(line, waypoints)
	var total float64
	for i := 1; i < len(waypoints); i++ {
		total += geo.HaversineMeters(waypoints[i-1], waypoints[i])
	}
	return line, total
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
