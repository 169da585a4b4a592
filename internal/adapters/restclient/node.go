package restclient

import (
	"context"

	"github.com/grindlemire/graft"
	"go.seclens.dev/seclens/internal/core/ports"
)

const (
	// ScanNodeID is the unique identifier for the scan client Graft node.
	ScanNodeID graft.ID = "adapter.restclient.scan"
	// AssessNodeID is the unique identifier for the assess client Graft node.
	AssessNodeID graft.ID = "adapter.restclient.assess"
)

func init() {
	graft.Register(graft.Node[ports.ScanClient]{
		ID:        ScanNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ScanClient, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.AssessClient]{
		ID:        AssessNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.AssessClient, error) {
			return New(), nil
		},
	})
}
