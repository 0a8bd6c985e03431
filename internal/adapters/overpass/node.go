package overpass

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"
	"go.trai.ch/fairway/internal/adapters/logger"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

// NodeID is the unique identifier for the Overpass client Graft node.
const NodeID graft.ID = "adapter.overpass"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (*Client, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg.Overpass, log), nil
		},
	})
}
