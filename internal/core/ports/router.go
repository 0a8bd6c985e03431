package ports

import (
	"context"

	"go.trai.ch/fairway/internal/core/domain"
)

// Router is one routing tier. It returns domain.ErrTierUnavailable (possibly wrapped)
// when it cannot produce a route for the request.
//
//go:generate mockgen -source=router.go -destination=mocks/mock_router.go -package=mocks
type Router interface {
	Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
}

// PlanObserver receives progress events while a route is planned.
type PlanObserver interface {
	// OnTierStart is called before a tier is tried.
	OnTierStart(tier domain.RoutingType)
	// OnTierComplete is called after a tier returned. err is nil when the tier won.
	OnTierComplete(tier domain.RoutingType, err error)
}
