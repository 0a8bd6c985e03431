package lockdir

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"
	"go.trai.ch/fairway/internal/adapters/logger"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

// NodeID is the unique identifier for the lock directory Graft node.
const NodeID graft.ID = "adapter.lockdir"

func init() {
	graft.Register(graft.Node[*Directory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (*Directory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			// Planning works without lock data; annotations are skipped then.
			dir, err := Load(cfg.Locks.File)
			if err != nil {
				log.Warn(err.Error())
				return nil, nil
			}
			return dir, nil
		},
	})
}
