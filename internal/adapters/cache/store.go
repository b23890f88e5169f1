// Package cache keeps downloaded package archives between runs so repeat
// installs and loader updates skip the network. Entries are keyed by package
// identifier and verified against recorded xxhash digests before reuse.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

const sumsFileName = "sums.json"

// Store is a flat directory of archives plus a JSON digest manifest.
type Store struct {
	dir  string
	path string
	log  ports.Logger

	mu   sync.Mutex
	sums map[string]string
}

// NewStore opens (or creates) the cache at dir.
func NewStore(dir string, log ports.Logger) (*Store, error) {
	s := &Store{
		dir:  filepath.Clean(dir),
		path: filepath.Join(dir, sumsFileName),
		log:  log,
		sums: make(map[string]string),
	}
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and derived from the configured cache dir.
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.sums); err != nil {
		// The cache is disposable; a broken manifest just means re-download.
		s.log.Warn("resetting corrupt cache manifest at " + s.path)
		s.sums = make(map[string]string)
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.sums, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	//nolint:gosec // Path is cleaned and derived from the configured cache dir.
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	return nil
}

// ArchivePath returns where the archive for id lives (or would live) in the
// cache. Downloads stream directly into this path before Commit.
func (s *Store) ArchivePath(id domain.PackageIdentifier) string {
	return filepath.Join(s.dir, id.String()+".zip")
}

// Get returns the cached archive path for id if present and its digest still
// matches. A corrupt or tampered entry is evicted and reported as a miss.
func (s *Store) Get(id domain.PackageIdentifier) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.String()
	want, ok := s.sums[key]
	if !ok {
		return "", false
	}

	path := s.ArchivePath(id)
	got, err := hashFile(path)
	if err != nil || got != want {
		s.log.Warn("evicting stale cache entry for " + key)
		delete(s.sums, key)
		_ = os.Remove(path)
		_ = s.save()
		return "", false
	}
	return path, true
}

// Commit records the digest of a freshly downloaded archive, making it
// eligible for reuse.
func (s *Store) Commit(id domain.PackageIdentifier) error {
	sum, err := hashFile(s.ArchivePath(id))
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sums[id.String()] = sum
	return s.save()
}

// Clean removes every cached archive and the digest manifest.
func (s *Store) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	s.sums = make(map[string]string)
	return nil
}

func hashFile(path string) (string, error) {
	//nolint:gosec // Path is derived from the configured cache dir.
	f, err := os.Open(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
