package ports

import "github.com/talon-mods/talon/internal/core/domain"

// ModScanner reconstructs installed mods from disk state. Results are
// snapshots: the filesystem remains the source of truth and callers re-scan
// rather than trusting a cached view across operations.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type ModScanner interface {
	// Scan walks the mods directory and returns one InstalledMod per
	// directory containing a recognized manifest. Directories without one
	// are skipped silently.
	Scan(root string) ([]domain.InstalledMod, error)
}
