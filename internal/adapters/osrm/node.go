package osrm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"
	"go.trai.ch/fairway/internal/adapters/logger"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

// NodeID is the unique identifier for the primary router Graft node.
const NodeID graft.ID = "adapter.osrm"

func init() {
	graft.Register(graft.Node[*Router]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (*Router, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			// No URL or no healthy server disables the tier for this process.
			if cfg.Primary.URL == "" {
				return nil, nil
			}
			router := New(cfg.Primary)

			timeout := cfg.Primary.HealthTimeout
			if timeout <= 0 {
				timeout = domain.DefaultPrimaryHealthTimeout
			}
			hctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			if err := router.HealthCheck(hctx); err != nil {
				log.Warn(err.Error())
				return nil, nil
			}
			return router, nil
		},
	})
}
