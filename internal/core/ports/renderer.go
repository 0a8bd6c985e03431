package ports

import "go.trai.ch/fairway/internal/core/domain"

// Renderer presents planning progress and the final route.
// The linear renderer prints a human summary; the GeoJSON renderer writes the feature only.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	PlanObserver

	// Render writes the finished route.
	Render(result *domain.RouteResult) error
}
