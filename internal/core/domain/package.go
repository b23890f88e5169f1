package domain

import (
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// PackageIdentifier names a single version of a package in the registry.
// It is immutable once constructed. Two identifiers describe the same
// package family when namespace and name match, regardless of version.
type PackageIdentifier struct {
	// Namespace is the registry namespace (the package author team).
	Namespace string

	// Name is the package name within its namespace.
	Name string

	// Version is a semantic-version-like ordered value, e.g. "1.2.3".
	// It may be empty when the caller wants "latest".
	Version string
}

// Family returns the version-independent family key, e.g. "northstar-Northstar".
func (p PackageIdentifier) Family() string {
	return p.Namespace + "-" + p.Name
}

// EnabledKey returns the key used in the enabled-mods file, e.g. "Northstar.Client".
func (p PackageIdentifier) EnabledKey() string {
	return p.Namespace + "." + p.Name
}

// SameFamily reports whether both identifiers name the same package family,
// ignoring versions.
func (p PackageIdentifier) SameFamily(o PackageIdentifier) bool {
	return p.Namespace == o.Namespace && p.Name == o.Name
}

// String renders the identifier in registry dependency-string form.
func (p PackageIdentifier) String() string {
	if p.Version == "" {
		return p.Family()
	}
	return p.Family() + "-" + p.Version
}

// ParsePackageRef parses a reference of the form "Namespace-Name" or
// "Namespace-Name-1.2.3". Registry names may not contain dashes, so the
// first dash splits the namespace and a trailing dotted-numeric segment,
// if present, is the version.
func ParsePackageRef(ref string) (PackageIdentifier, error) {
	parts := strings.Split(ref, "-")
	if len(parts) < 2 {
		return PackageIdentifier{}, zerr.With(ErrInvalidPackageRef, "ref", ref)
	}

	id := PackageIdentifier{Namespace: parts[0]}
	rest := parts[1:]

	if len(rest) > 1 && isVersion(rest[len(rest)-1]) {
		id.Version = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	id.Name = strings.Join(rest, "-")

	if id.Namespace == "" || id.Name == "" {
		return PackageIdentifier{}, zerr.With(ErrInvalidPackageRef, "ref", ref)
	}
	return id, nil
}

// CompareVersions orders two version strings semver-style. It returns
// -1, 0 or +1. An empty version sorts before any concrete version.
func CompareVersions(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

func canonicalVersion(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if semver.IsValid(v) {
		return v
	}
	return ""
}

func isVersion(s string) bool {
	if s == "" {
		return false
	}
	return semver.IsValid("v" + s)
}
