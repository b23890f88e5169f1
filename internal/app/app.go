// Package app implements the application layer for talon.
package app

import (
	"sort"
	"strings"
	"sync"

	"github.com/talon-mods/talon/internal/adapters/cache"
	"github.com/talon-mods/talon/internal/adapters/thunderstore"
	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"github.com/talon-mods/talon/internal/engine/installer"
	"go.trai.ch/zerr"
)

// Deps bundles the ports the App orchestrates.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Scanner      ports.ModScanner
	Index        ports.PackageIndex
	Feed         ports.ReleaseFeed
	Transport    ports.Transport
	EnabledStore ports.EnabledStore
	Telemetry    ports.Telemetry
	Logger       ports.Logger
}

// App wires the engine and adapters into user-facing operations. Every
// operation loads config and re-scans disk state; nothing is cached across
// calls, so concurrent talon processes only race on the filesystem itself.
type App struct {
	deps      Deps
	installer *installer.Installer

	mu         sync.Mutex
	configPath string
	override   *thunderstore.Client
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		deps:      deps,
		installer: installer.New(deps.Scanner, deps.Logger),
	}
}

// SetConfigPath points the app at an explicit config file. Called from the
// CLI's persistent flag hook before any operation runs.
func (a *App) SetConfigPath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configPath = path
}

func (a *App) config() (*domain.Config, error) {
	a.mu.Lock()
	path := a.configPath
	a.mu.Unlock()
	return a.deps.ConfigLoader.Load(path)
}

func (a *App) modsConfig() (*domain.Config, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	if cfg.ModsDir == "" {
		return nil, zerr.With(domain.ErrNotConfigured, "setting", "game_dir or mods_dir")
	}
	return cfg, nil
}

// registry returns the package index and release feed honoring a configured
// endpoint override.
func (a *App) registry(cfg *domain.Config) (ports.PackageIndex, ports.ReleaseFeed) {
	if cfg.IndexURL == "" {
		return a.deps.Index, a.deps.Feed
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.override == nil {
		a.override = thunderstore.NewClient(
			a.deps.Transport,
			a.deps.Logger,
			thunderstore.WithIndexURL(cfg.IndexURL),
		)
	}
	return a.override, a.override
}

func (a *App) openCache(cfg *domain.Config) (*cache.Store, error) {
	return cache.NewStore(cfg.CacheDir, a.deps.Logger)
}

// findInstalled matches a user-supplied reference against installed mods:
// a full "Namespace-Name" reference matches its family, a bare name matches
// case-insensitively.
func findInstalled(installed []domain.InstalledMod, ref string) []domain.InstalledMod {
	var matches []domain.InstalledMod
	if id, err := domain.ParsePackageRef(ref); err == nil {
		for _, mod := range installed {
			if mod.Manifest.Identifier().Family() == id.Family() {
				matches = append(matches, mod)
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}
	for _, mod := range installed {
		if strings.EqualFold(mod.Manifest.Name, ref) {
			matches = append(matches, mod)
		}
	}
	return matches
}

func sortMods(mods []domain.InstalledMod) {
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Manifest.Identifier().Family() < mods[j].Manifest.Identifier().Family()
	})
}
