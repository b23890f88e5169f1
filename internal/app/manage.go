package app

import (
	"context"
	"os"

	"github.com/talon-mods/talon/internal/core/domain"
	"go.trai.ch/zerr"
)

// List returns the installed mods with their enabled state applied, sorted
// by family key.
func (a *App) List(ctx context.Context) ([]domain.InstalledMod, error) {
	cfg, err := a.modsConfig()
	if err != nil {
		return nil, err
	}
	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return nil, err
	}
	set, err := a.deps.EnabledStore.Load(cfg.EnabledSetFile(), installed)
	if err != nil {
		return nil, err
	}

	for i := range installed {
		installed[i].Enabled = set.IsEnabled(installed[i].Manifest.Identifier().EnabledKey())
	}
	sortMods(installed)
	return installed, nil
}

// Enable marks the referenced mod active.
func (a *App) Enable(ctx context.Context, ref string) error {
	return a.toggle(ref, func(set *domain.EnabledSet, key string) {
		set.Enable(key)
	})
}

// Disable marks the referenced mod inactive without removing it from disk.
func (a *App) Disable(ctx context.Context, ref string) error {
	return a.toggle(ref, func(set *domain.EnabledSet, key string) {
		set.Disable(key)
	})
}

func (a *App) toggle(ref string, apply func(*domain.EnabledSet, string)) error {
	cfg, err := a.modsConfig()
	if err != nil {
		return err
	}
	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return err
	}

	matches := findInstalled(installed, ref)
	if len(matches) == 0 {
		return zerr.With(domain.ErrModNotInstalled, "ref", ref)
	}

	set, err := a.deps.EnabledStore.Load(cfg.EnabledSetFile(), installed)
	if err != nil {
		return err
	}
	for _, mod := range matches {
		apply(set, mod.Manifest.Identifier().EnabledKey())
	}
	return a.deps.EnabledStore.Save(cfg.EnabledSetFile(), set)
}

// Uninstall removes the referenced mods from disk and drops their enabled
// records.
func (a *App) Uninstall(ctx context.Context, refs []string) error {
	cfg, err := a.modsConfig()
	if err != nil {
		return err
	}
	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return err
	}

	var removed []domain.InstalledMod
	for _, ref := range refs {
		matches := findInstalled(installed, ref)
		if len(matches) == 0 {
			return zerr.With(domain.ErrModNotInstalled, "ref", ref)
		}
		removed = append(removed, matches...)
	}

	for _, mod := range removed {
		if err := os.RemoveAll(mod.Root); err != nil {
			return zerr.Wrap(err, "failed to remove mod directory")
		}
		a.deps.Logger.Info("removed " + mod.Manifest.Identifier().Family())
	}

	remaining, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return err
	}
	// Loading against the post-removal snapshot prunes the stale records.
	set, err := a.deps.EnabledStore.Load(cfg.EnabledSetFile(), remaining)
	if err != nil {
		return err
	}
	return a.deps.EnabledStore.Save(cfg.EnabledSetFile(), set)
}
