package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/adapters/logger"
	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/adapters/settings"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/engine/assesscache"
	"go.seclens.dev/seclens/internal/engine/interlock"
	"go.seclens.dev/seclens/internal/engine/scancache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			scancache.NodeID,
			assesscache.NodeID,
			interlock.NodeID,
			settings.NodeID,
			notifier.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			scan, err := graft.Dep[*scancache.Manager](ctx)
			if err != nil {
				return nil, err
			}
			assess, err := graft.Dep[*assesscache.Manager](ctx)
			if err != nil {
				return nil, err
			}
			lock, err := graft.Dep[*interlock.Interlock](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*settings.Store](ctx)
			if err != nil {
				return nil, err
			}
			console, err := graft.Dep[*notifier.Console](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(scan, assess, lock, store, console, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
