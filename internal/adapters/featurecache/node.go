package featurecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"
	"go.trai.ch/fairway/internal/adapters/logger"
	"go.trai.ch/fairway/internal/adapters/overpass"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

// NodeID is the unique identifier for the waterway source Graft node.
const NodeID graft.ID = "adapter.featurecache"

func init() {
	graft.Register(graft.Node[ports.WaterwaySource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{overpass.NodeID, logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (ports.WaterwaySource, error) {
			client, err := graft.Dep[*overpass.Client](ctx)
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

			if cfg.Graph.FeatureCacheOff || cfg.Graph.FeatureCacheDir == "" {
				return client, nil
			}

			// Another process may hold the directory lock; route without the cache then.
			db, err := Open(cfg.Graph.FeatureCacheDir, log)
			if err != nil {
				log.Warn(err.Error())
				return client, nil
			}
			return New(db, client, cfg.Graph.CacheTTL, log), nil
		},
	})
}
