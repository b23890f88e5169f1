// Package provision installs the mod-loading runtime itself: the loader
// package into the game directory and the compatibility-layer runtime into
// its own versioned target. Both paths download the latest published release
// and extract through a staging directory before touching the target.
package provision

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"github.com/talon-mods/talon/internal/engine/installer"
	"go.trai.ch/zerr"
)

// InstallLoader downloads the latest loader release and extracts it into
// gameDir, stripping the archive's well-known top-level directory. Files
// shipped by the loader replace their previous versions; everything else in
// gameDir, including installed mods, is left alone. Returns the installed
// version.
func InstallLoader(
	ctx context.Context,
	feed ports.ReleaseFeed,
	transport ports.Transport,
	gameDir string,
	onProgress ports.ProgressFunc,
) (string, error) {
	rel, err := latestRelease(ctx, feed)
	if err != nil {
		return "", err
	}

	archive, size, cleanup, err := download(ctx, transport, rel.DownloadURL, onProgress)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := ExtractLoader(archive, size, gameDir); err != nil {
		return "", err
	}
	return rel.Identifier.Version, nil
}

// ExtractLoader extracts a loader zip into gameDir. Only entries under the
// archive's top-level runtime directory are honored; the prefix is stripped
// so the payload lands directly in the game directory.
func ExtractLoader(archive io.ReaderAt, size int64, gameDir string) error {
	if err := requireDir(gameDir); err != nil {
		return err
	}

	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}
	for _, f := range zr.File {
		if _, err := installer.SanitizeEntryName(f.Name); err != nil {
			return err
		}
	}

	staging, err := os.MkdirTemp(gameDir, ".provision-")
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	defer os.RemoveAll(staging)

	prefix := domain.RuntimeArchivePrefix + "/"
	for _, f := range zr.File {
		rel, err := installer.SanitizeEntryName(f.Name)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(rel, prefix) {
			continue
		}
		rel = strings.TrimPrefix(rel, prefix)
		if rel == "" {
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
		if err := writeZipEntry(f, out); err != nil {
			return err
		}
	}

	return mergeMove(staging, gameDir)
}

// InstallRuntime downloads the latest compatibility-layer runtime (a tar+gzip
// archive) and places its top-level directories under targetDir, replacing
// any previous copy of the same version wholesale. Returns the installed
// version.
func InstallRuntime(
	ctx context.Context,
	feed ports.ReleaseFeed,
	transport ports.Transport,
	targetDir string,
	onProgress ports.ProgressFunc,
) (string, error) {
	rel, err := latestRelease(ctx, feed)
	if err != nil {
		return "", err
	}

	archive, _, cleanup, err := download(ctx, transport, rel.DownloadURL, onProgress)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := extractRuntime(archive, targetDir); err != nil {
		return "", err
	}
	return rel.Identifier.Version, nil
}

func extractRuntime(archive io.Reader, targetDir string) error {
	if err := os.MkdirAll(targetDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}

	staging, err := os.MkdirTemp(targetDir, ".provision-")
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	defer os.RemoveAll(staging)

	gz, err := gzip.NewReader(archive)
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
		}

		rel, err := installer.SanitizeEntryName(hdr.Name)
		if err != nil {
			return err
		}
		out := filepath.Join(staging, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(out, domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrInstallFailed.Error())
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrInstallFailed.Error())
			}
			// The runtime ships executables; keep the archive's mode bits.
			if err := writeTarEntry(tr, out, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(hdr.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrInstallFailed.Error())
			}
			if err := os.Symlink(hdr.Linkname, out); err != nil {
				return zerr.Wrap(err, domain.ErrInstallFailed.Error())
			}
		default:
			// Hard links, devices and the like have no business in a
			// runtime archive.
			continue
		}
	}

	return swapMove(staging, targetDir)
}

func latestRelease(ctx context.Context, feed ports.ReleaseFeed) (*domain.RemoteIndexEntry, error) {
	rel, err := feed.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, domain.ErrNoReleaseFound
	}
	return rel, nil
}

// download fetches url into a temporary file and returns it positioned for
// reading, along with its size and a cleanup func.
func download(
	ctx context.Context,
	transport ports.Transport,
	url string,
	onProgress ports.ProgressFunc,
) (*os.File, int64, func(), error) {
	f, err := os.CreateTemp("", "talon-runtime-*")
	if err != nil {
		return nil, 0, nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	cleanup := func() {
		f.Close()
		os.Remove(f.Name())
	}

	if err := transport.Fetch(ctx, url, f, onProgress); err != nil {
		cleanup()
		return nil, 0, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		cleanup()
		return nil, 0, nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, 0, nil, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	return f, info.Size(), cleanup, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	if !info.IsDir() {
		return zerr.With(domain.ErrInstallFailed, "path", dir)
	}
	return nil
}

func writeZipEntry(f *zip.File, out string) error {
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

func writeTarEntry(r io.Reader, out string, perm os.FileMode) error {
	//nolint:gosec // Target path was validated against the staging root.
	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	defer dst.Close()

	//nolint:gosec // Archive sizes are bounded by the release feed.
	if _, err := io.Copy(dst, r); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCorrupt.Error())
	}
	return nil
}

func checkLinkTarget(target string) error {
	if filepath.IsAbs(target) {
		return zerr.With(domain.ErrSuspiciousArchive, "link", target)
	}
	for _, seg := range strings.Split(filepath.ToSlash(target), "/") {
		if seg == ".." {
			return zerr.With(domain.ErrSuspiciousArchive, "link", target)
		}
	}
	return nil
}

// mergeMove relocates every file under staging into target, creating
// directories as needed and replacing files in place. Existing files not
// shipped by the archive survive.
func mergeMove(staging, target string) error {
	err := filepath.WalkDir(staging, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(staging, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		out := filepath.Join(target, rel)
		if d.IsDir() {
			return os.MkdirAll(out, domain.DirPerm)
		}
		return os.Rename(path, out)
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	return nil
}

// swapMove relocates every top-level entry of staging into target, replacing
// same-named entries wholesale.
func swapMove(staging, target string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	for _, e := range entries {
		dest := filepath.Join(target, e.Name())
		if err := os.RemoveAll(dest); err != nil {
			return zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
		if err := os.Rename(filepath.Join(staging, e.Name()), dest); err != nil {
			return zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
	}
	return nil
}
