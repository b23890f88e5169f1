// Package enabled persists the enabled-mods overlay file the game runtime
// reads at startup.
package enabled

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.EnabledStore using a flat JSON file.
type Store struct {
	log ports.Logger
}

func NewStore(log ports.Logger) *Store {
	return &Store{log: log}
}

// Load reads the enabled set at path. A missing file yields a fresh set with
// the core loader mods enabled. Entries that no longer correspond to an
// installed mod are pruned here, against the scan snapshot, rather than
// eagerly at uninstall time.
func (s *Store) Load(path string, installed []domain.InstalledMod) (*domain.EnabledSet, error) {
	set := domain.NewEnabledSet()

	//nolint:gosec // Path is derived from the configured mods directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, zerr.Wrap(err, domain.ErrEnabledSetReadFailed.Error())
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, set); err != nil {
			return nil, zerr.Wrap(err, domain.ErrEnabledSetReadFailed.Error())
		}
	}

	s.prune(set, installed)
	return set, nil
}

// prune drops records for mods no longer present on disk. Core loader keys
// are not tied to a scanned directory and always survive.
func (s *Store) prune(set *domain.EnabledSet, installed []domain.InstalledMod) {
	present := make(map[string]bool, len(installed))
	for _, mod := range installed {
		present[mod.Manifest.Identifier().EnabledKey()] = true
	}
	core := domain.NewEnabledSet()

	for _, key := range set.Keys() {
		if present[key] || core.Contains(key) {
			continue
		}
		s.log.Info("pruning enabled record for removed mod " + key)
		set.Remove(key)
	}
}

// Save writes the set to path. Key order is deterministic, so saving an
// unchanged set rewrites the file byte-identically.
func (s *Store) Save(path string, set *domain.EnabledSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrEnabledSetWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrEnabledSetWriteFailed.Error())
	}
	//nolint:gosec // Path is derived from the configured mods directory.
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrEnabledSetWriteFailed.Error())
	}
	return nil
}
