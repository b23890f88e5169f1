package enabled

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/talon-mods/talon/internal/adapters/logger"
	"github.com/talon-mods/talon/internal/core/ports"
)

const NodeID graft.ID = "adapter.enabled_store"

func init() {
	graft.Register(graft.Node[ports.EnabledStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.EnabledStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
