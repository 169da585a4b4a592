package notifier

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the notifier Graft node.
const NodeID graft.ID = "adapter.notifier"

func init() {
	graft.Register(graft.Node[*Console]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Console, error) {
			return New(), nil
		},
	})
}
