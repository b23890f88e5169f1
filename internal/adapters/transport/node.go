package transport

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/talon-mods/talon/internal/core/ports"
)

const NodeID graft.ID = "adapter.transport"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Transport, error) {
			return NewHTTP(), nil
		},
	})
}
