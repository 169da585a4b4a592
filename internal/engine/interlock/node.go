package interlock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/adapters/logger"
	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/core/ports"
)

// NodeID is the unique identifier for the interlock Graft node.
const NodeID graft.ID = "engine.interlock"

func init() {
	graft.Register(graft.Node[*Interlock]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{notifier.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Interlock, error) {
			console, err := graft.Dep[*notifier.Console](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(console, log), nil
		},
	})
}
