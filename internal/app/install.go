package app

import (
	"context"
	"os"

	"github.com/talon-mods/talon/internal/adapters/cache"
	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"github.com/talon-mods/talon/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// downloadConcurrency bounds parallel archive fetches.
const downloadConcurrency = 4

// Install resolves the given package references against the registry and
// commits every missing package into the mod store, dependencies first.
// Freshly installed mods are enabled.
func (a *App) Install(ctx context.Context, refs []string) error {
	ids := make([]domain.PackageIdentifier, 0, len(refs))
	for _, ref := range refs {
		id, err := domain.ParsePackageRef(ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	cfg, err := a.modsConfig()
	if err != nil {
		return err
	}
	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return err
	}

	index, _ := a.registry(cfg)
	plan, err := resolver.Resolve(ctx, ids, index, installed)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		a.deps.Logger.Info("nothing to install")
		return nil
	}

	return a.installPlan(ctx, cfg, plan)
}

// installPlan downloads the plan's archives concurrently, then installs them
// sequentially in plan order so dependencies land before dependents.
func (a *App) installPlan(ctx context.Context, cfg *domain.Config, plan domain.InstallPlan) error {
	store, err := a.openCache(cfg)
	if err != nil {
		return err
	}

	archives := make([]string, len(plan))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(downloadConcurrency)
	for i, entry := range plan {
		eg.Go(func() error {
			path, err := a.fetchArchive(egCtx, store, entry)
			if err != nil {
				return err
			}
			archives[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, entry := range plan {
		if err := a.installArchive(ctx, cfg, archives[i], entry); err != nil {
			return err
		}
	}

	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return err
	}
	set, err := a.deps.EnabledStore.Load(cfg.EnabledSetFile(), installed)
	if err != nil {
		return err
	}
	for _, entry := range plan {
		set.Enable(entry.Identifier.EnabledKey())
	}
	return a.deps.EnabledStore.Save(cfg.EnabledSetFile(), set)
}

// fetchArchive returns a local path for the entry's archive, downloading it
// unless the cache already holds a verified copy.
func (a *App) fetchArchive(ctx context.Context, store *cache.Store, entry domain.RemoteIndexEntry) (string, error) {
	name := "download " + entry.Identifier.String()
	ctx, vertex := a.deps.Telemetry.Record(ctx, name)

	if path, ok := store.Get(entry.Identifier); ok {
		vertex.Cached()
		vertex.Complete(nil)
		return path, nil
	}

	path := store.ArchivePath(entry.Identifier)
	err := a.downloadTo(ctx, path, entry, vertex)
	if err == nil {
		err = store.Commit(entry.Identifier)
	}
	vertex.Complete(err)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) downloadTo(ctx context.Context, path string, entry domain.RemoteIndexEntry, vertex ports.Vertex) error {
	//nolint:gosec // Path is derived from the configured cache dir.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	fetchErr := a.deps.Transport.Fetch(ctx, entry.DownloadURL, f, vertex.Progress)
	closeErr := f.Close()
	if fetchErr != nil {
		_ = os.Remove(path)
		return fetchErr
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return zerr.Wrap(closeErr, domain.ErrDownloadFailed.Error())
	}
	return nil
}

func (a *App) installArchive(ctx context.Context, cfg *domain.Config, path string, entry domain.RemoteIndexEntry) error {
	_, vertex := a.deps.Telemetry.Record(ctx, "install "+entry.Identifier.String())

	//nolint:gosec // Path is derived from the configured cache dir.
	f, err := os.Open(path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrInstallFailed.Error())
		vertex.Complete(err)
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		err = zerr.Wrap(err, domain.ErrInstallFailed.Error())
		vertex.Complete(err)
		return err
	}

	_, err = a.installer.Install(f, info.Size(), cfg.ModsDir, entry.Identifier.Namespace)
	vertex.Complete(err)
	return err
}

// Update re-resolves every installed mod against the registry and installs
// newer versions where available. Returns the identifiers that were updated.
func (a *App) Update(ctx context.Context) ([]domain.PackageIdentifier, error) {
	cfg, err := a.modsConfig()
	if err != nil {
		return nil, err
	}
	installed, err := a.deps.Scanner.Scan(cfg.ModsDir)
	if err != nil {
		return nil, err
	}

	index, _ := a.registry(cfg)
	var outdated []domain.PackageIdentifier
	var plan domain.InstallPlan
	for _, mod := range installed {
		id := mod.Manifest.Identifier()
		entry, err := index.Lookup(ctx, id.Family())
		if err != nil {
			return nil, err
		}
		if entry == nil {
			// Locally authored mods are not registry packages.
			continue
		}
		if domain.CompareVersions(entry.Identifier.Version, id.Version) > 0 {
			outdated = append(outdated, entry.Identifier)
			plan = append(plan, *entry)
		}
	}
	if len(plan) == 0 {
		a.deps.Logger.Info("all mods are up to date")
		return nil, nil
	}

	if err := a.installPlan(ctx, cfg, plan); err != nil {
		return nil, err
	}
	return outdated, nil
}
