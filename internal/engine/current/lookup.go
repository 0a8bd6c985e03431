package current

import (
	"context"
	"math"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/core/ports"
)

// gaugeSearchDeg pads the lookup position into the gauge query box.
const gaugeSearchDeg = 0.5

// Lookup resolves currents from live gauges first and the static waterway table second.
type Lookup struct {
	gauges      ports.GaugeSource
	logger      ports.Logger
	maxRadiusKm float64
	byName      map[string]float64
}

// NewLookup creates a Lookup. gauges may be nil to use the static table only.
func NewLookup(gauges ports.GaugeSource, logger ports.Logger, maxRadiusKm float64, waterways []domain.WaterwayCurrent) *Lookup {
	if maxRadiusKm <= 0 {
		maxRadiusKm = domain.DefaultGaugeMaxRadiusKm
	}
	byName := make(map[string]float64, len(waterways))
	for _, w := range waterways {
		byName[w.Name] = w.CurrentKmh
	}
	return &Lookup{
		gauges:      gauges,
		logger:      logger,
		maxRadiusKm: maxRadiusKm,
		byName:      byName,
	}
}

// CurrentAt implements ports.FlowLookup.
func (l *Lookup) CurrentAt(ctx context.Context, p orb.Point, waterway string) (float64, bool) {
	if kmh, ok := l.gaugeAt(ctx, p); ok {
		return kmh, true
	}
	if waterway == "" {
		return 0, false
	}
	kmh, ok := l.byName[waterway]
	return kmh, ok
}

func (l *Lookup) gaugeAt(ctx context.Context, p orb.Point) (float64, bool) {
	if l.gauges == nil {
		return 0, false
	}

	bound := orb.Bound{
		Min: orb.Point{p.Lon() - gaugeSearchDeg, p.Lat() - gaugeSearchDeg},
		Max: orb.Point{p.Lon() + gaugeSearchDeg, p.Lat() + gaugeSearchDeg},
	}
	gauges, err := l.gauges.Gauges(ctx, bound)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("gauge lookup failed: " + err.Error())
		}
		return 0, false
	}

	best := math.Inf(1)
	var kmh float64
	for _, g := range gauges {
		if g.FlowVelocityKmh == nil {
			continue
		}
		d := geo.HaversineMeters(p, g.Point) / 1000
		if d <= l.maxRadiusKm && d < best {
			best, kmh = d, *g.FlowVelocityKmh
		}
	}
	return kmh, !math.IsInf(best, 1)
}
