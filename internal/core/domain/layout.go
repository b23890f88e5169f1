package domain

import "path/filepath"

const (
	// ManifestFileName is the package-level manifest sidecar inside a mod directory.
	ManifestFileName = "manifest.json"

	// ModJSONFileName is the mod-level descriptor shipped inside mod payloads.
	ModJSONFileName = "mod.json"

	// AuthorTagFileName records the registry namespace a mod was installed from.
	AuthorTagFileName = "thunderstore_author.txt"

	// EnabledSetFileName is the persisted enabled-mod overlay, kept next to the mods.
	EnabledSetFileName = "enabled_mods.json"

	// RuntimeArchivePrefix is the top-level directory the loader archive unpacks to.
	RuntimeArchivePrefix = "Northstar"

	// LoaderNamespace and LoaderName identify the mod-loading runtime package itself.
	// The loader must never be resolved as a transitive dependency of another mod.
	LoaderNamespace = "northstar"
	LoaderName      = "Northstar"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// LoaderFamily returns the family key of the runtime/loader package.
func LoaderFamily() string {
	return LoaderNamespace + "-" + LoaderName
}

// EnabledSetPath returns the path of the enabled-mods file for a mods directory.
func EnabledSetPath(modsDir string) string {
	return filepath.Join(modsDir, EnabledSetFileName)
}
