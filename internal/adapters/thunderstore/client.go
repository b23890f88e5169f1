// Package thunderstore implements the registry client against the
// Thunderstore v1 package listing API.
package thunderstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultIndexURL is the community-scoped package listing for the game.
const DefaultIndexURL = "https://northstar.thunderstore.io/c/northstar/api/v1/package/"

// packageListing mirrors the registry's loose JSON; unknown fields are
// ignored for forward compatibility. Versions are listed newest first.
type packageListing struct {
	Name     string           `json:"name"`
	Owner    string           `json:"owner"`
	Versions []packageVersion `json:"versions"`
}

type packageVersion struct {
	VersionNumber string   `json:"version_number"`
	Description   string   `json:"description"`
	DownloadURL   string   `json:"download_url"`
	FileSize      int64    `json:"file_size"`
	Dependencies  []string `json:"dependencies"`
}

// Option configures a Client.
type Option func(*Client)

// WithIndexURL points the client at a different package listing endpoint.
func WithIndexURL(url string) Option {
	return func(c *Client) {
		c.indexURL = url
	}
}

// Client implements ports.PackageIndex and ports.ReleaseFeed. The full index
// is fetched once per process and served from memory; package-manager runs
// are short-lived, so there is no TTL.
type Client struct {
	transport ports.Transport
	log       ports.Logger
	indexURL  string

	mu       sync.Mutex
	byFamily map[string]*packageListing
}

func NewClient(transport ports.Transport, log ports.Logger, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		log:       log,
		indexURL:  DefaultIndexURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the latest index entry for a package family, or nil, nil
// when the family is unknown.
func (c *Client) Lookup(ctx context.Context, family string) (*domain.RemoteIndexEntry, error) {
	listing, err := c.listing(ctx, family)
	if err != nil || listing == nil {
		return nil, err
	}
	if len(listing.Versions) == 0 {
		return nil, nil
	}
	return c.entry(listing, &listing.Versions[0]), nil
}

// LookupVersion returns the index entry for a specific version, or nil, nil
// when the family or version is unknown.
func (c *Client) LookupVersion(ctx context.Context, family, version string) (*domain.RemoteIndexEntry, error) {
	listing, err := c.listing(ctx, family)
	if err != nil || listing == nil {
		return nil, err
	}
	for i := range listing.Versions {
		if listing.Versions[i].VersionNumber == version {
			return c.entry(listing, &listing.Versions[i]), nil
		}
	}
	return nil, nil
}

// LatestRelease returns the newest published loader release.
func (c *Client) LatestRelease(ctx context.Context) (*domain.RemoteIndexEntry, error) {
	rel, err := c.Lookup(ctx, domain.LoaderFamily())
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, zerr.With(domain.ErrNoReleaseFound, "family", domain.LoaderFamily())
	}
	return rel, nil
}

func (c *Client) listing(ctx context.Context, family string) (*packageListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byFamily == nil {
		if err := c.fetchIndex(ctx); err != nil {
			return nil, err
		}
	}
	return c.byFamily[family], nil
}

// fetchIndex downloads and maps the full package listing. Callers hold c.mu.
func (c *Client) fetchIndex(ctx context.Context) error {
	data, err := c.transport.FetchBytes(ctx, c.indexURL)
	if err != nil {
		return err
	}

	var listings []packageListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return zerr.Wrap(err, "failed to decode package index")
	}

	c.byFamily = make(map[string]*packageListing, len(listings))
	for i := range listings {
		l := &listings[i]
		id := domain.PackageIdentifier{Namespace: l.Owner, Name: l.Name}
		c.byFamily[id.Family()] = l
	}
	c.log.Info("fetched package index")
	return nil
}

func (c *Client) entry(l *packageListing, v *packageVersion) *domain.RemoteIndexEntry {
	deps := make([]domain.PackageIdentifier, 0, len(v.Dependencies))
	for _, ref := range v.Dependencies {
		id, err := domain.ParsePackageRef(ref)
		if err != nil {
			c.log.Warn("skipping unparseable dependency " + ref + " of " + l.Name)
			continue
		}
		deps = append(deps, id)
	}
	return &domain.RemoteIndexEntry{
		Identifier: domain.PackageIdentifier{
			Namespace: l.Owner,
			Name:      l.Name,
			Version:   v.VersionNumber,
		},
		DownloadURL:  v.DownloadURL,
		Dependencies: deps,
		FileSize:     v.FileSize,
	}
}

var (
	_ ports.PackageIndex = (*Client)(nil)
	_ ports.ReleaseFeed  = (*Client)(nil)
)
