package app

import (
	"context"
	"errors"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/fairway/internal/adapters/config"       //nolint:depguard // Wired in app layer
	"go.trai.ch/fairway/internal/adapters/featurecache" //nolint:depguard // Wired in app layer
	"go.trai.ch/fairway/internal/adapters/lockdir"      //nolint:depguard // Wired in app layer
	"go.trai.ch/fairway/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/engine/coordinator"
	"go.trai.ch/fairway/internal/engine/graphstore"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized components the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger

	closers []io.Closer
}

// NewComponents bundles a and log with the resources Close releases.
func NewComponents(a *App, log ports.Logger, closers ...io.Closer) *Components {
	return &Components{App: a, Logger: log, closers: closers}
}

// Close releases held resources in reverse order of acquisition.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	return errors.Join(errs...)
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			coordinator.NodeID,
			lockdir.NodeID,
			graphstore.NodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			featurecache.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			source, err := graft.Dep[ports.WaterwaySource](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			// The feature cache holds the badger directory lock until closed.
			var closers []io.Closer
			if c, ok := source.(io.Closer); ok {
				closers = append(closers, c)
			}
			return NewComponents(a, log, closers...), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	coord, err := graft.Dep[*coordinator.Coordinator](ctx)
	if err != nil {
		return nil, err
	}

	dir, err := graft.Dep[*lockdir.Directory](ctx)
	if err != nil {
		return nil, err
	}

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

	// A typed nil must not reach the LockFinder interface.
	var finder LockFinder
	if dir != nil {
		finder = dir
	}

	return New(coord, finder, log, cfg).WithGraphStore(store), nil
}
