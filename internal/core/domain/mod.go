package domain

// InstalledMod is a mod reconstructed from disk state by the local store
// scanner. Root points at the directory directly containing the mod's
// manifest file. Records are replaced wholesale on re-scan; the filesystem
// is the sole source of truth for what is installed.
type InstalledMod struct {
	Manifest  Manifest
	AuthorTag string
	Root      string
	Enabled   bool
}

// RemoteIndexEntry is a read-only snapshot of one downloadable package
// version, supplied by the registry client. The engine never mutates it.
type RemoteIndexEntry struct {
	Identifier   PackageIdentifier
	DownloadURL  string
	Dependencies []PackageIdentifier
	FileSize     int64
}

// InstallPlan is an ordered sequence of packages to download and install,
// topologically arranged so dependencies precede dependents. Produced fresh
// per resolution call, never persisted.
type InstallPlan []RemoteIndexEntry

// Families returns the family keys of the plan in order.
func (p InstallPlan) Families() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Identifier.Family()
	}
	return out
}

// SatisfiedBy reports whether an installed mod already covers the given
// identifier at an equal-or-newer version.
func SatisfiedBy(id PackageIdentifier, installed []InstalledMod) bool {
	for _, mod := range installed {
		if !mod.Manifest.Identifier().SameFamily(id) {
			continue
		}
		if CompareVersions(mod.Manifest.Version, id.Version) >= 0 {
			return true
		}
	}
	return false
}
