package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// ResolvedNodeID is the unique identifier for the loaded configuration.
	ResolvedNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(OSFS{}), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        ResolvedNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(domain.DefaultConfigPath())
		},
	})
}
