package memcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/core/ports"
)

// NodeID is the unique identifier for the memcache Graft node.
const NodeID graft.ID = "adapter.memcache"

func init() {
	graft.Register(graft.Node[ports.KeyValueCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.KeyValueCache, error) {
			return New(), nil
		},
	})
}
