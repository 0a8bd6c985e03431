// Package current revises route durations for water currents.
package current

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/core/ports"
)

// Flow direction sources reported in domain.CurrentAdjustment.FlowSource.
const (
	FlowSourceKnown     = "known"
	FlowSourceEstimated = "estimated from route"
)

const (
	sampleSpacingKm  = 10.0
	minSamples       = 3
	bearingSamples   = 20
	minBearingPoints = 10
)

// Adjuster estimates travel time over ground from per-segment current projections.
type Adjuster struct {
	enabled   bool
	tolerance float64
	waterways []domain.WaterwayCurrent
	lookup    ports.FlowLookup
}

// NewAdjuster creates an Adjuster. Waterways are matched in name order.
func NewAdjuster(cfg domain.CurrentConfig, lookup ports.FlowLookup) *Adjuster {
	waterways := slices.Clone(cfg.Waterways)
	slices.SortStableFunc(waterways, func(a, b domain.WaterwayCurrent) int {
		return strings.Compare(a.Name, b.Name)
	})

	tolerance := cfg.MatchToleranceDeg
	if tolerance <= 0 {
		tolerance = domain.DefaultMatchToleranceDeg
	}

	return &Adjuster{
		enabled:   cfg.Enabled,
		tolerance: tolerance,
		waterways: waterways,
		lookup:    lookup,
	}
}

// Enabled reports whether adjustments are computed.
func (a *Adjuster) Enabled() bool {
	return a != nil && a.enabled
}

// AdjustDuration returns the travel time in hours for line at boatSpeedKmh through
// the water. The explanation is nil when no adjustment was attempted.
func (a *Adjuster) AdjustDuration(
	ctx context.Context,
	line orb.LineString,
	distanceKm, boatSpeedKmh float64,
) (float64, *domain.CurrentAdjustment) {
	if boatSpeedKmh <= 0 {
		return 0, nil
	}
	base := distanceKm / boatSpeedKmh
	if !a.Enabled() || len(line) < 2 {
		return base, nil
	}

	routeBearing := DominantBearing(line)
	waterway, flow, source := a.matchWaterway(routeBearing)

	info := &domain.CurrentAdjustment{
		DetectedWaterway: waterway,
		FlowDirectionDeg: flow,
		FlowSource:       source,
		RouteBearingDeg:  routeBearing,
		BoatSpeedKmh:     boatSpeedKmh,
		OriginalHours:    base,
	}

	var (
		total      float64
		sawCurrent bool
	)
	indices := sampleIndices(len(line), distanceKm)
	for i := 1; i < len(indices); i++ {
		from, to := indices[i-1], indices[i]
		seg := domain.SegmentAdjustment{
			DistanceKm:        geo.LengthMeters(line[from:to+1]) / 1000,
			SegmentBearingDeg: geo.InitialBearingDegrees(line[from], line[to]),
			EffectiveSpeedKmh: boatSpeedKmh,
		}

		kmh := a.currentAt(ctx, geo.Midpoint(line[from], line[to]), waterway)
		if kmh != 0 {
			sawCurrent = true
			seg.CurrentKmh = kmh
			angle := geo.AngleBetweenDegrees(seg.SegmentBearingDeg, flow) * math.Pi / 180
			seg.EffectiveSpeedKmh = math.Max(0, boatSpeedKmh+kmh*math.Cos(angle))
		}

		if seg.EffectiveSpeedKmh > 0 {
			seg.TimeHours = seg.DistanceKm / seg.EffectiveSpeedKmh
		} else {
			seg.Stalled = true
			seg.TimeHours = seg.DistanceKm / boatSpeedKmh
		}

		total += seg.TimeHours
		info.Segments = append(info.Segments, seg)
	}

	if !sawCurrent {
		total = base
	}
	info.AdjustedHours = total
	info.TimeDiffHours = total - base
	return total, info
}

func (a *Adjuster) currentAt(ctx context.Context, p orb.Point, waterway string) float64 {
	if a.lookup == nil || ctx.Err() != nil {
		return 0
	}
	kmh, ok := a.lookup.CurrentAt(ctx, p, waterway)
	if !ok || math.IsNaN(kmh) || math.IsInf(kmh, 0) {
		return 0
	}
	return kmh
}

// matchWaterway picks the configured waterway whose known flow axis is closest to
// the route bearing, in either direction of travel. Without a match the route
// bearing stands in for the flow direction.
func (a *Adjuster) matchWaterway(routeBearing float64) (string, float64, string) {
	best := math.Inf(1)
	var (
		name string
		flow float64
	)
	for _, w := range a.waterways {
		if w.CurrentKmh <= 0 {
			continue
		}
		dir, ok := flowDirection(w)
		if !ok {
			continue
		}
		diff := math.Min(
			geo.AngleBetweenDegrees(routeBearing, dir),
			geo.AngleBetweenDegrees(routeBearing, dir+180),
		)
		if diff < best && diff < a.tolerance {
			best, name, flow = diff, w.Name, geo.NormalizeDegrees(dir)
		}
	}
	if name == "" {
		return "", routeBearing, FlowSourceEstimated
	}
	return name, flow, FlowSourceKnown
}

// DominantBearing estimates the overall heading of line. Short lines use the
// start-to-end bearing; longer ones the circular mean of evenly spaced segment bearings.
func DominantBearing(line orb.LineString) float64 {
	n := len(line)
	if n < 2 {
		return 0
	}
	if n < minBearingPoints {
		return geo.InitialBearingDegrees(line[0], line[n-1])
	}

	step := max(1, n/bearingSamples)
	var bearings []float64
	for i := 0; i < n-1; i += step {
		bearings = append(bearings, geo.InitialBearingDegrees(line[i], line[i+1]))
	}
	return geo.CircularMeanDegrees(bearings)
}

// sampleIndices spreads roughly one sample every 10 km over n points, always
// including the first and last point.
func sampleIndices(n int, distanceKm float64) []int {
	count := max(minSamples, int(distanceKm/sampleSpacingKm))
	out := make([]int, count)
	for i := range out {
		out[i] = i * (n - 1) / (count - 1)
	}
	out[count-1] = n - 1
	return slices.Compact(out)
}

func flowDirection(w domain.WaterwayCurrent) (float64, bool) {
	if w.FlowDirectionDeg != nil {
		return *w.FlowDirectionDeg, true
	}
	dir, ok := domain.KnownFlowDirections[w.Name]
	return dir, ok
}
