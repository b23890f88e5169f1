// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/talon-mods/talon/internal/adapters/config"
	_ "github.com/talon-mods/talon/internal/adapters/enabled"
	_ "github.com/talon-mods/talon/internal/adapters/logger"
	_ "github.com/talon-mods/talon/internal/adapters/modfs"
	_ "github.com/talon-mods/talon/internal/adapters/telemetry/progrock"
	_ "github.com/talon-mods/talon/internal/adapters/thunderstore"
	_ "github.com/talon-mods/talon/internal/adapters/transport"
	// Register app nodes.
	_ "github.com/talon-mods/talon/internal/app"
)
