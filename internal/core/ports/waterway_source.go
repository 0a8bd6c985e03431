package ports

import (
	"context"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
)

// WaterwaySource fetches the navigable waterway polylines inside a bounding box.
//
//go:generate mockgen -source=waterway_source.go -destination=mocks/mock_waterway_source.go -package=mocks
type WaterwaySource interface {
	FetchWaterwayFeatures(ctx context.Context, bound orb.Bound) ([]domain.Way, error)
}
