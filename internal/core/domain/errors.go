package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestMalformed is returned when a manifest document cannot be decoded.
	ErrManifestMalformed = zerr.New("malformed manifest document")

	// ErrManifestMissingField is returned when a manifest lacks a required field.
	ErrManifestMissingField = zerr.New("manifest missing required field")

	// ErrInvalidPackageRef is returned when a package reference string cannot be parsed.
	ErrInvalidPackageRef = zerr.New("invalid package reference, expected format: Namespace-Name or Namespace-Name-1.2.3")

	// ErrScanFailed is returned when the mods directory cannot be read.
	ErrScanFailed = zerr.New("failed to read mods directory")

	// ErrPackageNotFound is returned when a requested package is absent from the remote index.
	ErrPackageNotFound = zerr.New("package not found in index")

	// ErrVersionConflict is returned when two requested identifiers name the same
	// package family with different versions.
	ErrVersionConflict = zerr.New("conflicting versions requested for the same package")

	// ErrSuspiciousArchive is returned when an archive entry would escape the
	// destination directory.
	ErrSuspiciousArchive = zerr.New("archive entry escapes the destination directory")

	// ErrArchiveCorrupt is returned when an archive cannot be decoded.
	ErrArchiveCorrupt = zerr.New("failed to decode archive")

	// ErrInstallFailed is returned when installing an archive fails for I/O reasons.
	ErrInstallFailed = zerr.New("failed to install archive")

	// ErrDownloadFailed is returned when a transfer fails. Retries are a caller concern.
	ErrDownloadFailed = zerr.New("transport failure during download")

	// ErrNoReleaseFound is returned when the runtime release feed yields no candidates.
	ErrNoReleaseFound = zerr.New("no runtime release found")

	// ErrModNotInstalled is returned when an operation targets a mod that is not
	// present in the local store.
	ErrModNotInstalled = zerr.New("mod is not installed")

	// ErrEnabledSetReadFailed is returned when the enabled-mods file cannot be read.
	ErrEnabledSetReadFailed = zerr.New("failed to read enabled mods file")

	// ErrEnabledSetWriteFailed is returned when the enabled-mods file cannot be written.
	ErrEnabledSetWriteFailed = zerr.New("failed to write enabled mods file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCacheFailed is returned when the download cache cannot be read or written.
	ErrCacheFailed = zerr.New("failed to access download cache")

	// ErrNotConfigured is returned when an operation needs a setting the user
	// has not provided, such as the game directory.
	ErrNotConfigured = zerr.New("missing configuration")
)
