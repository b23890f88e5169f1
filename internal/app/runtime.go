package app

import (
	"context"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/engine/provision"
	"go.trai.ch/zerr"
)

// InstallLoader provisions the latest mod loader release into the game
// directory. Returns the installed version.
func (a *App) InstallLoader(ctx context.Context) (string, error) {
	cfg, err := a.config()
	if err != nil {
		return "", err
	}
	if cfg.GameDir == "" {
		return "", zerr.With(domain.ErrNotConfigured, "setting", "game_dir")
	}

	_, feed := a.registry(cfg)
	ctx, vertex := a.deps.Telemetry.Record(ctx, "install loader")
	version, err := provision.InstallLoader(ctx, feed, a.deps.Transport, cfg.GameDir, vertex.Progress)
	vertex.Complete(err)
	if err != nil {
		return "", err
	}
	a.deps.Logger.Info("installed loader " + version)
	return version, nil
}

// InstallRuntime provisions the latest compatibility-layer runtime into the
// configured runtime directory. Returns the installed version.
func (a *App) InstallRuntime(ctx context.Context) (string, error) {
	cfg, err := a.config()
	if err != nil {
		return "", err
	}
	if cfg.RuntimeDir == "" {
		return "", zerr.With(domain.ErrNotConfigured, "setting", "runtime_dir")
	}

	_, feed := a.registry(cfg)
	ctx, vertex := a.deps.Telemetry.Record(ctx, "install runtime")
	version, err := provision.InstallRuntime(ctx, feed, a.deps.Transport, cfg.RuntimeDir, vertex.Progress)
	vertex.Complete(err)
	if err != nil {
		return "", err
	}
	a.deps.Logger.Info("installed runtime " + version)
	return version, nil
}

// Clean drops every cached archive.
func (a *App) Clean(ctx context.Context) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	store, err := a.openCache(cfg)
	if err != nil {
		return err
	}
	return store.Clean()
}

// Close releases the telemetry session. Called once at process exit.
func (a *App) Close() error {
	return a.deps.Telemetry.Close()
}
