package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/talon-mods/talon/internal/adapters/config"
	"github.com/talon-mods/talon/internal/adapters/enabled"
	"github.com/talon-mods/talon/internal/adapters/logger"
	"github.com/talon-mods/talon/internal/adapters/modfs"
	"github.com/talon-mods/talon/internal/adapters/telemetry/progrock"
	"github.com/talon-mods/talon/internal/adapters/thunderstore"
	"github.com/talon-mods/talon/internal/adapters/transport"
	"github.com/talon-mods/talon/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the fully wired application for the CLI entrypoint.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			modfs.NodeID,
			enabled.NodeID,
			transport.NodeID,
			thunderstore.IndexNodeID,
			thunderstore.FeedNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:       app,
				Logger:    log,
				Telemetry: telemetry,
			}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.ModScanner](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[ports.PackageIndex](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[ports.ReleaseFeed](ctx)
	if err != nil {
		return nil, err
	}

	tr, err := graft.Dep[ports.Transport](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.EnabledStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		ConfigLoader: loader,
		Scanner:      scanner,
		Index:        index,
		Feed:         feed,
		Transport:    tr,
		EnabledStore: store,
		Telemetry:    telemetry,
		Logger:       log,
	}), nil
}
