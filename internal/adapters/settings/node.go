package settings

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Store, error) {
			return NewStore(), nil
		},
	})
}
