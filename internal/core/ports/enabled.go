package ports

import "github.com/talon-mods/talon/internal/core/domain"

// EnabledStore persists the enabled-mod overlay.
//
//go:generate mockgen -source=enabled.go -destination=mocks/mock_enabled.go -package=mocks
type EnabledStore interface {
	// Load reads the enabled set at path, pruning entries that no longer
	// correspond to an installed mod. A missing file yields a fresh set,
	// not an error.
	Load(path string, installed []domain.InstalledMod) (*domain.EnabledSet, error)

	// Save writes the set to path with deterministic encoding.
	Save(path string, set *domain.EnabledSet) error
}
