package app_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talon-mods/talon/internal/adapters/enabled"
	"github.com/talon-mods/talon/internal/adapters/modfs"
	"github.com/talon-mods/talon/internal/adapters/telemetry"
	"github.com/talon-mods/talon/internal/app"
	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"github.com/talon-mods/talon/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	cfg       *domain.Config
	index     *mocks.MockPackageIndex
	feed      *mocks.MockReleaseFeed
	transport *mocks.MockTransport
}

// newFixture builds an App against a temp-dir config. The filesystem-facing
// ports (scanner, enabled store) are real adapters; the network-facing ones
// are mocks.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	root := t.TempDir()
	cfg := &domain.Config{
		GameDir:    filepath.Join(root, "game"),
		ModsDir:    filepath.Join(root, "game", "R2Northstar", "mods"),
		CacheDir:   filepath.Join(root, "cache"),
		RuntimeDir: filepath.Join(root, "runtime"),
	}
	require.NoError(t, os.MkdirAll(cfg.ModsDir, 0o750))
	require.NoError(t, os.MkdirAll(cfg.GameDir, 0o750))

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(cfg, nil).AnyTimes()

	f := &fixture{
		cfg:       cfg,
		index:     mocks.NewMockPackageIndex(ctrl),
		feed:      mocks.NewMockReleaseFeed(ctrl),
		transport: mocks.NewMockTransport(ctrl),
	}
	f.app = app.New(app.Deps{
		ConfigLoader: loader,
		Scanner:      modfs.NewScanner(log),
		Index:        f.index,
		Feed:         f.feed,
		Transport:    f.transport,
		EnabledStore: enabled.NewStore(log),
		Telemetry:    telemetry.NewNoOp(),
		Logger:       log,
	})
	return f
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func modArchive(t *testing.T, name, version string) []byte {
	t.Helper()
	manifest := `{"name":"` + name + `","version_number":"` + version + `","description":"d"}`
	return buildZip(t, map[string]string{
		"manifest.json":                   manifest,
		"mods/" + name + "/mod.json":      `{"Name":"` + name + `","Version":"` + version + `"}`,
		"mods/" + name + "/scripts/x.nut": "// payload",
	})
}

// serve arranges the mock transport to stream payload for the given URL.
func (f *fixture) serve(url string, payload []byte) {
	f.transport.EXPECT().
		Fetch(gomock.Any(), url, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, w io.Writer, onProgress ports.ProgressFunc) error {
			_, err := w.Write(payload)
			if onProgress != nil {
				onProgress(int64(len(payload)), int64(len(payload)))
			}
			return err
		})
}

func entry(ns, name, version, url string, deps ...domain.PackageIdentifier) *domain.RemoteIndexEntry {
	return &domain.RemoteIndexEntry{
		Identifier:   domain.PackageIdentifier{Namespace: ns, Name: name, Version: version},
		DownloadURL:  url,
		Dependencies: deps,
	}
}

func TestApp_Install(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dep := entry("LibAuthor", "ModLib", "0.3.0", "https://cdn.test/ModLib.zip")
	top := entry("Acme", "CoolMod", "1.2.0", "https://cdn.test/CoolMod.zip", dep.Identifier)

	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.index.EXPECT().LookupVersion(gomock.Any(), "LibAuthor-ModLib", "0.3.0").Return(dep, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.2.0"))
	f.serve(dep.DownloadURL, modArchive(t, "ModLib", "0.3.0"))

	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	mods, err := f.app.List(ctx)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "Acme-CoolMod", mods[0].Manifest.Identifier().Family())
	assert.Equal(t, "LibAuthor-ModLib", mods[1].Manifest.Identifier().Family())
	assert.True(t, mods[0].Enabled)
	assert.True(t, mods[1].Enabled)

	assert.FileExists(t, filepath.Join(f.cfg.ModsDir, "Acme", "CoolMod", "mod.json"))
	assert.FileExists(t, filepath.Join(f.cfg.ModsDir, "Acme", "CoolMod", "thunderstore_author.txt"))
	assert.FileExists(t, filepath.Join(f.cfg.ModsDir, "LibAuthor", "ModLib", "scripts", "x.nut"))

	set, err := enabledSet(f)
	require.NoError(t, err)
	assert.True(t, set.Contains("Acme.CoolMod"))
	assert.True(t, set.Contains("LibAuthor.ModLib"))
}

func enabledSet(f *fixture) (*domain.EnabledSet, error) {
	data, err := os.ReadFile(f.cfg.EnabledSetFile())
	if err != nil {
		return nil, err
	}
	set := domain.NewEnabledSet()
	if err := set.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return set, nil
}

func TestApp_Install_SecondRunHitsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.2.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil).Times(2)
	// One fetch only: the second install reuses the cached archive.
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.2.0"))

	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))
	require.NoError(t, os.RemoveAll(filepath.Join(f.cfg.ModsDir, "Acme")))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	assert.FileExists(t, filepath.Join(f.cfg.ModsDir, "Acme", "CoolMod", "mod.json"))
}

func TestApp_Install_AlreadyInstalled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.2.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.2.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	// Same version again: empty plan, no fetch expectations registered.
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))
}

func TestApp_Install_BadReference(t *testing.T) {
	f := newFixture(t)
	err := f.app.Install(context.Background(), []string{"not a ref"})
	require.Error(t, err)
}

func TestApp_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.0.0", "https://cdn.test/CoolMod-1.0.0.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.0.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	newer := entry("Acme", "CoolMod", "1.1.0", "https://cdn.test/CoolMod-1.1.0.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(newer, nil)
	f.serve(newer.DownloadURL, modArchive(t, "CoolMod", "1.1.0"))

	updated, err := f.app.Update(ctx)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "1.1.0", updated[0].Version)

	mods, err := f.app.List(ctx)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "1.1.0", mods[0].Manifest.Version)
}

func TestApp_Update_UpToDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.0.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.0.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	updated, err := f.app.Update(ctx)
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestApp_EnableDisable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.0.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.0.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	require.NoError(t, f.app.Disable(ctx, "CoolMod"))
	mods, err := f.app.List(ctx)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.False(t, mods[0].Enabled)

	require.NoError(t, f.app.Enable(ctx, "Acme-CoolMod"))
	mods, err = f.app.List(ctx)
	require.NoError(t, err)
	assert.True(t, mods[0].Enabled)
}

func TestApp_Toggle_NotInstalled(t *testing.T) {
	f := newFixture(t)
	err := f.app.Enable(context.Background(), "Nobody-Nothing")
	require.ErrorIs(t, err, domain.ErrModNotInstalled)
}

func TestApp_Uninstall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.0.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.0.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	require.NoError(t, f.app.Uninstall(ctx, []string{"Acme-CoolMod"}))

	assert.NoDirExists(t, filepath.Join(f.cfg.ModsDir, "Acme", "CoolMod"))
	mods, err := f.app.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, mods)

	set, err := enabledSet(f)
	require.NoError(t, err)
	assert.False(t, set.Contains("Acme.CoolMod"))
}

func TestApp_Uninstall_NotInstalled(t *testing.T) {
	f := newFixture(t)
	err := f.app.Uninstall(context.Background(), []string{"Nobody-Nothing"})
	require.ErrorIs(t, err, domain.ErrModNotInstalled)
}

func TestApp_InstallLoader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rel := entry("northstar", "Northstar", "1.30.0", "https://cdn.test/Northstar.zip")
	f.feed.EXPECT().LatestRelease(gomock.Any()).Return(rel, nil)
	f.serve(rel.DownloadURL, buildZip(t, map[string]string{
		"Northstar/NorthstarLauncher.exe":       "launcher",
		"Northstar/R2Northstar/placeholder.txt": "keep",
	}))

	version, err := f.app.InstallLoader(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.30.0", version)
	assert.FileExists(t, filepath.Join(f.cfg.GameDir, "NorthstarLauncher.exe"))
}

func TestApp_InstallLoader_NotConfigured(t *testing.T) {
	f := newFixture(t)
	f.cfg.GameDir = ""
	_, err := f.app.InstallLoader(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestApp_InstallRuntime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rel := entry("proton", "NorthstarProton", "8.1.0", "https://cdn.test/proton.tar.gz")
	f.feed.EXPECT().LatestRelease(gomock.Any()).Return(rel, nil)
	f.serve(rel.DownloadURL, buildTarGz(t, map[string]string{
		"NorthstarProton-8.1.0/proton": "#!/bin/sh",
	}))

	version, err := f.app.InstallRuntime(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8.1.0", version)
	assert.FileExists(t, filepath.Join(f.cfg.RuntimeDir, "NorthstarProton-8.1.0", "proton"))
}

func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	seen := map[string]bool{}
	for _, name := range names {
		dir := filepath.Dir(name)
		if dir != "." && !seen[dir] {
			seen[dir] = true
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name: dir + "/", Typeflag: tar.TypeDir, Mode: 0o755,
			}))
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name, Typeflag: tar.TypeReg, Mode: 0o644,
			Size: int64(len(files[name])),
		}))
		_, err := tw.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top := entry("Acme", "CoolMod", "1.0.0", "https://cdn.test/CoolMod.zip")
	f.index.EXPECT().Lookup(gomock.Any(), "Acme-CoolMod").Return(top, nil)
	f.serve(top.DownloadURL, modArchive(t, "CoolMod", "1.0.0"))
	require.NoError(t, f.app.Install(ctx, []string{"Acme-CoolMod"}))

	entries, err := os.ReadDir(f.cfg.CacheDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	require.NoError(t, f.app.Clean(ctx))
	entries, err = os.ReadDir(f.cfg.CacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
