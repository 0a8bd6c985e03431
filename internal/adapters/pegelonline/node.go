package pegelonline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"
	"go.trai.ch/fairway/internal/core/domain"
)

// NodeID is the unique identifier for the gauge client Graft node.
const NodeID graft.ID = "adapter.pegelonline"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			if !cfg.Gauges.Enabled {
				return nil, nil
			}
			return New(cfg.Gauges), nil
		},
	})
}
