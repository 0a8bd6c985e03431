package ports

import (
	"context"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
)

// FlowLookup resolves the water current at a position.
//
//go:generate mockgen -source=flow.go -destination=mocks/mock_flow.go -package=mocks
type FlowLookup interface {
	// CurrentAt returns the current speed in km/h at p. waterway names the matched
	// river and may be empty. ok is false when no value is known.
	CurrentAt(ctx context.Context, p orb.Point, waterway string) (kmh float64, ok bool)
}

// GaugeSource lists water gauges and their latest flow velocities.
type GaugeSource interface {
	Gauges(ctx context.Context, bound orb.Bound) ([]domain.Gauge, error)
}
