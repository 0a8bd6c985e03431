package pathfinder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/engine/graphstore"
)

// NodeID is the unique identifier for the graph router Graft node.
const NodeID graft.ID = "engine.pathfinder"

func init() {
	graft.Register(graft.Node[*GraphRouter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			graphstore.NodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*GraphRouter, error) {
			store, err := graft.Dep[*graphstore.Store](ctx)
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

			return NewGraphRouter(store, log, cfg.Graph.SegmentCutoffKm, cfg.Graph.RegionBufferKm), nil
		},
	})
}
