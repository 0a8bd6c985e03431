package linear

import (
	"encoding/json"
	"io"
	"os"

	"go.trai.ch/fairway/internal/core/domain"
)

// FeatureRenderer writes the route as a GeoJSON Feature and stays silent while planning.
type FeatureRenderer struct {
	stdout io.Writer
	indent bool
}

// NewFeatureRenderer creates a FeatureRenderer. A nil writer means stdout.
func NewFeatureRenderer(stdout io.Writer, indent bool) *FeatureRenderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &FeatureRenderer{stdout: stdout, indent: indent}
}

// OnTierStart does nothing.
func (r *FeatureRenderer) OnTierStart(domain.RoutingType) {}

// OnTierComplete does nothing.
func (r *FeatureRenderer) OnTierComplete(domain.RoutingType, error) {}

// Render writes the feature followed by a newline.
func (r *FeatureRenderer) Render(result *domain.RouteResult) error {
	enc := json.NewEncoder(r.stdout)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result.Feature())
}
