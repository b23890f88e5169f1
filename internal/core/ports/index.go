// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/talon-mods/talon/internal/core/domain"
)

// PackageIndex is the registry client's lookup surface. Implementations own
// the network protocol and JSON mapping; the engine only consumes snapshots.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Lookup returns the latest index entry for a package family.
	// Returns nil, nil if the family is unknown.
	Lookup(ctx context.Context, family string) (*domain.RemoteIndexEntry, error)

	// LookupVersion returns the index entry for a specific version of a family.
	// Returns nil, nil if the family or version is unknown.
	LookupVersion(ctx context.Context, family, version string) (*domain.RemoteIndexEntry, error)
}

// ReleaseFeed supplies the latest published release of the runtime/loader
// package for provisioning.
type ReleaseFeed interface {
	// LatestRelease returns the newest runtime release descriptor.
	// Fails with domain.ErrNoReleaseFound when the feed yields no candidates.
	LatestRelease(ctx context.Context) (*domain.RemoteIndexEntry, error)
}
