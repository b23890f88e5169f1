package thunderstore

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/talon-mods/talon/internal/adapters/logger"
	"github.com/talon-mods/talon/internal/adapters/transport"
	"github.com/talon-mods/talon/internal/core/ports"
)

const (
	ClientNodeID graft.ID = "adapter.thunderstore"
	IndexNodeID  graft.ID = "adapter.package_index"
	FeedNodeID   graft.ID = "adapter.release_feed"
)

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        ClientNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			transport.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Client, error) {
			tr, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(tr, log), nil
		},
	})

	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        IndexNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			ClientNodeID,
		},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			return graft.Dep[*Client](ctx)
		},
	})

	graft.Register(graft.Node[ports.ReleaseFeed]{
		ID:        FeedNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			ClientNodeID,
		},
		Run: func(ctx context.Context) (ports.ReleaseFeed, error) {
			return graft.Dep[*Client](ctx)
		},
	})
}
