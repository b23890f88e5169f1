// Package installer commits package archives into the local mod store using a
// stage-then-swap discipline: nothing appears under the destination root until
// a fully extracted, repaired mod directory is renamed into place.
package installer

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

// Option configures an install call.
type Option func(*options)

type options struct {
	sanityCheck bool
}

// WithoutSanityCheck disables the pre-extraction entry path validation. Only
// callers handing over archives from a trusted local source should use this.
func WithoutSanityCheck() Option {
	return func(o *options) {
		o.sanityCheck = false
	}
}

// Installer extracts zip package archives into a mods directory.
type Installer struct {
	scanner ports.ModScanner
	log     ports.Logger
}

func New(scanner ports.ModScanner, log ports.Logger) *Installer {
	return &Installer{scanner: scanner, log: log}
}

// Install extracts the archive into destRoot under the author's directory and
// returns the resulting installed mods. The archive is enumerated and
// validated in full before any byte is extracted; extraction happens in a
// staging directory on the same filesystem and is moved into place with a
// rename per mod directory. destRoot is left untouched on every failure
// before the move.
func (ins *Installer) Install(
	archive io.ReaderAt,
	size int64,
	destRoot string,
	authorTag string,
	opts ...Option,
) ([]domain.InstalledMod, error) {
	o := options{sanityCheck: true}
	for _, opt := range opts {
		opt(&o)
	}

	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}

	if o.sanityCheck {
		for _, f := range zr.File {
			if _, err := SanitizeEntryName(f.Name); err != nil {
				return nil, err
			}
		}
	}

	if err := os.MkdirAll(destRoot, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	staging, err := os.MkdirTemp(destRoot, ".staging-")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	defer os.RemoveAll(staging)

	if err := ins.extract(zr, staging); err != nil {
		return nil, err
	}

	roots, err := modRoots(staging)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, zerr.With(domain.ErrInstallFailed, "reason", "no mod directory found in archive")
	}

	pkgManifest := readStagingManifest(staging, authorTag)

	authorDir := filepath.Join(destRoot, authorTag)
	if err := os.MkdirAll(authorDir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}

	placed := make(map[string]bool, len(roots))
	for _, root := range roots {
		name := filepath.Base(root)
		if err := ins.repairSidecars(root, name, authorTag, pkgManifest); err != nil {
			return nil, err
		}

		dest := filepath.Join(authorDir, name)
		// Reinstalling over an existing version replaces it wholesale.
		if err := os.RemoveAll(dest); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
		if err := os.Rename(root, dest); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
		placed[name] = true
		ins.log.Info("installed mod " + authorTag + "/" + name)
	}

	installed, err := ins.scanner.Scan(authorDir)
	if err != nil {
		return nil, err
	}
	result := make([]domain.InstalledMod, 0, len(placed))
	for _, mod := range installed {
		if placed[filepath.Base(mod.Root)] {
			result = append(result, mod)
		}
	}
	return result, nil
}

// SanitizeEntryName normalizes an archive entry name and rejects anything
// that would resolve outside the extraction root. Checks run on the cleaned
// path, not the raw name, so encoded traversal sequences cannot slip through.
func SanitizeEntryName(name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", zerr.With(domain.ErrSuspiciousArchive, "entry", name)
		}
	}
	cleaned := path.Clean(slashed)
	if cleaned == "." || path.IsAbs(cleaned) || len(cleaned) >= 2 && cleaned[1] == ':' {
		return "", zerr.With(domain.ErrSuspiciousArchive, "entry", name)
	}
	return cleaned, nil
}

func (ins *Installer) extract(zr *zip.Reader, staging string) error {
	for _, f := range zr.File {
		rel, err := SanitizeEntryName(f.Name)
		if err != nil {
			return err
		}
		// Hidden top-level entries (macOS metadata and the like) are noise.
		if strings.HasPrefix(rel, ".") {
			continue
		}

		out := filepath.Join(staging, filepath.FromSlash(rel))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(out, domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrInstallFailed.Error())
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
			return zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
		if err := extractFile(f, out); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, out string) error {
	rc, err := f.Open()
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}
	defer rc.Close()

	//nolint:gosec // Target path was validated against the staging root.
	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	defer dst.Close()

	if _, err := io.Copy(dst, rc); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}
	return nil
}

// modRoots locates the mod directories inside an extracted archive. Registry
// packages carry their mods under a top-level mods/ directory; archives that
// unpack a mod directory straight at the root are accepted too.
func modRoots(staging string) ([]string, error) {
	modsDir := filepath.Join(staging, "mods")
	if info, err := os.Stat(modsDir); err == nil && info.IsDir() {
		return listDirs(modsDir)
	}

	dirs, err := listDirs(staging)
	if err != nil {
		return nil, err
	}
	var roots []string
	for _, dir := range dirs {
		if hasDescriptor(dir) {
			roots = append(roots, dir)
		}
	}
	return roots, nil
}

func listDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

func hasDescriptor(dir string) bool {
	for _, name := range []string{domain.ModJSONFileName, domain.ManifestFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// readStagingManifest parses the package-level manifest at the archive root
// when present. Its absence is fine; sidecar repair falls back to per-mod
// descriptors.
func readStagingManifest(staging, authorTag string) *domain.Manifest {
	data, err := os.ReadFile(filepath.Join(staging, domain.ManifestFileName))
	if err != nil {
		return nil
	}
	m, err := domain.ParseManifest(data, authorTag)
	if err != nil {
		return nil
	}
	return &m
}

// repairSidecars ensures each placed mod directory carries the manifest.json
// and thunderstore_author.txt pair the store scanner recognizes. Archives that
// ship only the minimal per-mod files get them synthesized here.
func (ins *Installer) repairSidecars(root, name, authorTag string, pkg *domain.Manifest) error {
	authorFile := filepath.Join(root, domain.AuthorTagFileName)
	if err := os.WriteFile(authorFile, []byte(authorTag), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}

	manifestFile := filepath.Join(root, domain.ManifestFileName)
	if _, err := os.Stat(manifestFile); err == nil {
		return nil
	}

	m := pkg
	if m == nil {
		m = synthesizeManifest(root, name, authorTag)
	}
	data, err := m.MarshalDocument()
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	if err := os.WriteFile(manifestFile, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	return nil
}

func synthesizeManifest(root, name, authorTag string) *domain.Manifest {
	m := &domain.Manifest{Name: name, Namespace: authorTag}
	data, err := os.ReadFile(filepath.Join(root, domain.ModJSONFileName))
	if err != nil {
		return m
	}
	mj, err := domain.ParseModJSON(data)
	if err != nil {
		return m
	}
	if mj.Name != "" {
		m.Name = mj.Name
	}
	m.Version = mj.Version
	m.Description = mj.Description
	return m
}
