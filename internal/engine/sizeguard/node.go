package sizeguard

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/adapters/memcache"
	"go.seclens.dev/seclens/internal/core/ports"
)

// NodeID is the unique identifier for the size guard Graft node.
const NodeID graft.ID = "engine.sizeguard"

func init() {
	graft.Register(graft.Node[*Guard]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{memcache.NodeID},
		Run: func(ctx context.Context) (*Guard, error) {
			cache, err := graft.Dep[ports.KeyValueCache](ctx)
			if err != nil {
				return nil, err
			}
			return New(cache), nil
		},
	})
}
