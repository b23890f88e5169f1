package domain

import "path/filepath"

// GameModsRelDir is where the loader expects mods, relative to the game
// directory.
const GameModsRelDir = "R2Northstar/mods"

// Config holds the tool's resolved settings. Loaders apply defaults before
// returning it, so consumers can use every field as-is.
type Config struct {
	// GameDir is the game installation directory. Empty when the user has
	// not configured one; operations that need it must fail with a clear
	// message rather than guessing.
	GameDir string

	// ModsDir is the mod store root. Defaults to GameDir/R2Northstar/mods.
	ModsDir string

	// CacheDir holds downloaded archives between runs.
	CacheDir string

	// RuntimeDir is where the compatibility-layer runtime is installed,
	// typically Steam's compatibilitytools.d. Empty when not configured.
	RuntimeDir string

	// IndexURL overrides the registry package listing endpoint. Empty means
	// the registry client's default.
	IndexURL string
}

// EnabledSetFile returns the path of the enabled-mods overlay file.
func (c *Config) EnabledSetFile() string {
	return EnabledSetPath(c.ModsDir)
}

// DefaultModsDir returns the conventional mods directory for a game
// installation.
func DefaultModsDir(gameDir string) string {
	return filepath.Join(gameDir, filepath.FromSlash(GameModsRelDir))
}
