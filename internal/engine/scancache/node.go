package scancache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/adapters/logger"
	"go.seclens.dev/seclens/internal/adapters/memcache"
	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/adapters/restclient"
	"go.seclens.dev/seclens/internal/adapters/settings"
	"go.seclens.dev/seclens/internal/adapters/telemetry"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/engine/sizeguard"
)

// NodeID is the unique identifier for the scan cache manager Graft node.
const NodeID graft.ID = "engine.scancache"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			memcache.NodeID,
			restclient.ScanNodeID,
			settings.NodeID,
			sizeguard.NodeID,
			logger.NodeID,
			notifier.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			cache, err := graft.Dep[ports.KeyValueCache](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[ports.ScanClient](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*settings.Store](ctx)
			if err != nil {
				return nil, err
			}
			guard, err := graft.Dep[*sizeguard.Guard](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			console, err := graft.Dep[*notifier.Console](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(cache, client, store, guard, log, console, tracer), nil
		},
	})
}
