package ports

import "github.com/talon-mods/talon/internal/core/domain"

// ConfigLoader resolves the tool's settings.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path. An empty path triggers discovery
	// of the conventional locations; a missing file yields defaults, not an
	// error.
	Load(path string) (*domain.Config, error)
}
