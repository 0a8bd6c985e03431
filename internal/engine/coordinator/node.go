package coordinator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/lockdir"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/osrm"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/engine/current"
	"go.trai.ch/fairway/internal/engine/pathfinder"
)

// NodeID is the unique identifier for the coordinator Graft node.
const NodeID graft.ID = "engine.coordinator"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			osrm.NodeID,
			pathfinder.NodeID,
			lockdir.NodeID,
			current.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			primaryRouter, err := graft.Dep[*osrm.Router](ctx)
			if err != nil {
				return nil, err
			}

			graphRouter, err := graft.Dep[*pathfinder.GraphRouter](ctx)
			if err != nil {
				return nil, err
			}

			dir, err := graft.Dep[*lockdir.Directory](ctx)
			if err != nil {
				return nil, err
			}

			adjuster, err := graft.Dep[*current.Adjuster](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			// Typed nils must not leak into the interfaces.
			var primary, graph ports.Router
			if primaryRouter != nil {
				primary = primaryRouter
			}
			if graphRouter != nil && cfg.Graph.Enabled {
				graph = graphRouter
			}
			var locksDir ports.LockDirectory
			if dir != nil {
				locksDir = dir
			}

			return New(primary, graph, locksDir, adjuster, log, tracer, Settings{
				PrimaryTimeout:   cfg.Primary.Timeout,
				GraphTimeout:     cfg.Graph.Timeout,
				LockBufferMeters: cfg.Locks.BufferMeters,
				DefaultSpeedKmh:  cfg.Boat.SpeedKmh,
			}), nil
		},
	})
}
