package current

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/pegelonline" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the current adjuster Graft node.
	NodeID graft.ID = "engine.current"
	// LookupNodeID is the unique identifier for the flow lookup Graft node.
	LookupNodeID graft.ID = "engine.current.lookup"
)

func init() {
	graft.Register(graft.Node[*Lookup]{
		ID:        LookupNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pegelonline.NodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Lookup, error) {
			client, err := graft.Dep[*pegelonline.Client](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			var gauges ports.GaugeSource
			if cfg.Gauges.Enabled && client != nil {
				gauges = client
			}
			return NewLookup(gauges, log, cfg.Gauges.MaxRadiusKm, cfg.Current.Waterways), nil
		},
	})

	graft.Register(graft.Node[*Adjuster]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			LookupNodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Adjuster, error) {
			lookup, err := graft.Dep[*Lookup](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewAdjuster(cfg.Current, lookup), nil
		},
	})
}
