package graphstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/featurecache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

// NodeID is the unique identifier for the graph store Graft node.
const NodeID graft.ID = "engine.graphstore"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			featurecache.NodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Store, error) {
			source, err := graft.Dep[ports.WaterwaySource](ctx)
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

			return New(source, log, WithTTL(cfg.Graph.CacheTTL), WithPenalties(cfg.Graph.Penalties)), nil
		},
	})
}
