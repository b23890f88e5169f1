package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// Manifest is the canonical metadata record for a mod. It is parsed from the
// loosely-typed package-description documents shipped inside archives; unknown
// keys are tolerated for forward compatibility.
type Manifest struct {
	Name         string
	Namespace    string
	Version      string
	Description  string
	Dependencies []PackageIdentifier
}

// Identifier returns the package identifier described by the manifest.
func (m Manifest) Identifier() PackageIdentifier {
	return PackageIdentifier{Namespace: m.Namespace, Name: m.Name, Version: m.Version}
}

// manifestDoc mirrors the registry manifest.json shape. The namespace is not
// part of the classic document, so alternative keys are accepted and callers
// may supply a fallback from the author-tag sidecar.
type manifestDoc struct {
	Name          string   `json:"name"`
	Namespace     string   `json:"namespace"`
	Author        string   `json:"author"`
	VersionNumber string   `json:"version_number"`
	Description   string   `json:"description"`
	Dependencies  []string `json:"dependencies"`
}

// ParseManifest decodes a manifest.json document. The namespace argument is
// used when the document itself carries none (classic documents rely on the
// author-tag sidecar for it). Fails with ErrManifestMalformed when the
// document cannot be decoded and ErrManifestMissingField when name or
// namespace end up empty.
//
// Dependency entries naming the manifest's own family are dropped: a package
// can never depend on itself. Entries naming the runtime/loader family are
// kept; filtering those is a resolver concern.
func ParseManifest(data []byte, namespace string) (Manifest, error) {
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, zerr.Wrap(err, ErrManifestMalformed.Error())
	}

	if doc.Namespace != "" {
		namespace = doc.Namespace
	} else if doc.Author != "" {
		namespace = doc.Author
	}

	if doc.Name == "" {
		return Manifest{}, zerr.With(ErrManifestMissingField, "field", "name")
	}
	if namespace == "" {
		return Manifest{}, zerr.With(ErrManifestMissingField, "field", "namespace")
	}

	m := Manifest{
		Name:        doc.Name,
		Namespace:   namespace,
		Version:     doc.VersionNumber,
		Description: doc.Description,
	}

	self := m.Identifier()
	for _, dep := range doc.Dependencies {
		id, err := ParsePackageRef(dep)
		if err != nil {
			return Manifest{}, zerr.With(err, "dependency", dep)
		}
		if id.SameFamily(self) {
			continue
		}
		m.Dependencies = append(m.Dependencies, id)
	}

	return m, nil
}

// MarshalDocument renders the manifest back into the registry manifest.json
// shape. Used when synthesizing sidecar files for archives that only ship
// mod-level descriptors.
func (m Manifest) MarshalDocument() ([]byte, error) {
	deps := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		deps = append(deps, d.String())
	}
	doc := manifestDoc{
		Name:          m.Name,
		Namespace:     m.Namespace,
		VersionNumber: m.Version,
		Description:   m.Description,
		Dependencies:  deps,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ModJSON is the mod-level descriptor (mod.json) found inside mod payloads.
// The document uses PascalCase keys and carries fields the engine does not
// interpret; those are ignored, not reflected over.
type ModJSON struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Version     string `json:"Version"`
}

// ParseModJSON decodes a mod.json document.
func ParseModJSON(data []byte) (ModJSON, error) {
	var doc ModJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return ModJSON{}, zerr.Wrap(err, ErrManifestMalformed.Error())
	}
	if doc.Name == "" {
		return ModJSON{}, zerr.With(ErrManifestMissingField, "field", "Name")
	}
	return doc, nil
}
