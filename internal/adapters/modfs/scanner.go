// Package modfs reconstructs installed-mod state from the mods directory.
// Disk is the source of truth: every scan rebuilds the full result set and
// nothing is cached between calls.
package modfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scanner implements ports.ModScanner over a mods directory laid out as
// <root>/<AuthorTag>/<ModName>. Mod directories placed directly under the
// root are accepted too, so a narrow scan of a single author directory works
// with the same code path.
type Scanner struct {
	log ports.Logger
}

func NewScanner(log ports.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan walks the immediate subdirectories of root and one nested level of
// author group directories. Directories without a recognized manifest are
// skipped silently; arbitrary user files may coexist in the tree.
func (s *Scanner) Scan(root string) ([]domain.InstalledMod, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrScanFailed.Error())
	}

	var mods []domain.InstalledMod
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())

		if hasManifest(dir) {
			if mod, ok := s.load(dir, filepath.Base(root)); ok {
				mods = append(mods, mod)
			}
			continue
		}

		// Author group directory: one downloaded package may unpack into
		// multiple sibling mod folders sharing one author tag.
		nested, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("skipping unreadable directory " + dir)
			continue
		}
		for _, n := range nested {
			if !n.IsDir() {
				continue
			}
			sub := filepath.Join(dir, n.Name())
			if !hasManifest(sub) {
				continue
			}
			if mod, ok := s.load(sub, e.Name()); ok {
				mods = append(mods, mod)
			}
		}
	}
	return mods, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, domain.ManifestFileName))
	return err == nil && !info.IsDir()
}

// load reads one mod directory. A broken manifest downgrades to a warning;
// the directory is treated as absent rather than failing the whole scan.
func (s *Scanner) load(dir, fallbackTag string) (domain.InstalledMod, bool) {
	tag := readAuthorTag(dir, fallbackTag)

	data, err := os.ReadFile(filepath.Join(dir, domain.ManifestFileName))
	if err != nil {
		s.log.Warn("skipping unreadable manifest in " + dir)
		return domain.InstalledMod{}, false
	}
	manifest, err := domain.ParseManifest(data, tag)
	if err != nil {
		s.log.Warn("skipping invalid manifest in " + dir)
		return domain.InstalledMod{}, false
	}

	return domain.InstalledMod{
		Manifest:  manifest,
		AuthorTag: tag,
		Root:      dir,
		Enabled:   true,
	}, true
}

// readAuthorTag reads the author sidecar. Its absence is not an error; the
// surrounding directory name stands in.
func readAuthorTag(dir, fallback string) string {
	data, err := os.ReadFile(filepath.Join(dir, domain.AuthorTagFileName))
	if err != nil {
		return fallback
	}
	tag := strings.TrimSpace(string(data))
	if tag == "" {
		return fallback
	}
	return tag
}
