// Package resolver computes install plans from the remote package index.
package resolver

import (
	"context"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
)

// RuntimePredicate reports whether an identifier names the mod-loading
// runtime. Such dependencies are never expanded: the loader must not be
// pulled in as a transitive dependency of itself, a known hazard in the
// source registry data.
type RuntimePredicate func(domain.PackageIdentifier) bool

// Option configures a resolution call.
type Option func(*options)

type options struct {
	isRuntime RuntimePredicate
}

// WithRuntimePredicate overrides the default loader-family check.
func WithRuntimePredicate(fn RuntimePredicate) Option {
	return func(o *options) {
		o.isRuntime = fn
	}
}

func defaultOptions() options {
	return options{
		isRuntime: func(id domain.PackageIdentifier) bool {
			return id.Family() == domain.LoaderFamily()
		},
	}
}

// node tracks one discovered package family during resolution.
type node struct {
	entry domain.RemoteIndexEntry
	deps  []string // dependency families kept after filtering
	// requested marks identifiers the caller named explicitly; their version
	// wins over any transitively discovered one.
	requested bool
}

// Resolve computes the minimal closure of packages to fetch for the requested
// identifiers. The result is topologically ordered with dependencies before
// dependents, stable by first-discovery order for unrelated branches.
//
// Each family is expanded at most once per call, which also breaks dependency
// cycles. Dependencies already satisfied by an installed mod at an
// equal-or-newer version are skipped, as are dependencies matching the
// runtime predicate. Two requested identifiers naming the same family with
// different versions fail with domain.ErrVersionConflict; this is surfaced,
// never auto-resolved.
func Resolve(
	ctx context.Context,
	requested []domain.PackageIdentifier,
	index ports.PackageIndex,
	installed []domain.InstalledMod,
	opts ...Option,
) (domain.InstallPlan, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkRequestedConflicts(requested); err != nil {
		return nil, err
	}

	nodes := make(map[string]*node)
	var order []string // first-discovery order of families
	queue := make([]domain.PackageIdentifier, 0, len(requested))

	for _, id := range requested {
		queue = append(queue, id)
	}
	remainingRequested := len(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		fromRequest := remainingRequested > 0
		if fromRequest {
			remainingRequested--
		}

		family := id.Family()
		if existing, ok := nodes[family]; ok {
			if err := upgradeNode(ctx, existing, id, fromRequest, index); err != nil {
				return nil, err
			}
			continue
		}

		entry, err := lookup(ctx, index, id)
		if err != nil {
			return nil, err
		}

		n := &node{entry: *entry, requested: fromRequest}
		for _, dep := range entry.Dependencies {
			if o.isRuntime(dep) {
				continue
			}
			if dep.SameFamily(id) {
				continue
			}
			if domain.SatisfiedBy(dep, installed) {
				continue
			}
			n.deps = append(n.deps, dep.Family())
			queue = append(queue, dep)
		}
		nodes[family] = n
		order = append(order, family)
	}

	return buildPlan(nodes, order), nil
}

func checkRequestedConflicts(requested []domain.PackageIdentifier) error {
	versions := make(map[string]string, len(requested))
	for _, id := range requested {
		prev, ok := versions[id.Family()]
		if ok && prev != id.Version {
			err := zerr.With(domain.ErrVersionConflict, "family", id.Family())
			err = zerr.With(err, "versions", prev+" vs "+id.Version)
			return err
		}
		if !ok {
			versions[id.Family()] = id.Version
		}
	}
	return nil
}

// upgradeNode reconciles a second discovery of an already-known family.
// The family is not re-expanded; only the version selection may change.
func upgradeNode(
	ctx context.Context,
	existing *node,
	id domain.PackageIdentifier,
	fromRequest bool,
	index ports.PackageIndex,
) error {
	if fromRequest {
		existing.requested = true
	}
	if existing.requested && !fromRequest {
		// A user-specified version always beats a transitively-discovered one.
		return nil
	}
	if domain.CompareVersions(id.Version, existing.entry.Identifier.Version) <= 0 {
		return nil
	}

	entry, err := lookup(ctx, index, id)
	if err != nil {
		return err
	}
	existing.entry = *entry
	return nil
}

func lookup(ctx context.Context, index ports.PackageIndex, id domain.PackageIdentifier) (*domain.RemoteIndexEntry, error) {
	var (
		entry *domain.RemoteIndexEntry
		err   error
	)
	if id.Version == "" {
		entry, err = index.Lookup(ctx, id.Family())
	} else {
		entry, err = index.LookupVersion(ctx, id.Family(), id.Version)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "index lookup failed"), "family", id.Family())
	}
	if entry == nil {
		return nil, zerr.With(domain.ErrPackageNotFound, "family", id.Family())
	}
	return entry, nil
}

// buildPlan emits the plan in topological order, dependencies first. A
// depth-first walk in first-discovery order keeps unrelated branches stable;
// the in-progress set breaks cycles that survived expansion.
func buildPlan(nodes map[string]*node, order []string) domain.InstallPlan {
	plan := make(domain.InstallPlan, 0, len(order))
	done := make(map[string]bool, len(order))
	inProgress := make(map[string]bool, len(order))

	var visit func(family string)
	visit = func(family string) {
		n, ok := nodes[family]
		if !ok || done[family] || inProgress[family] {
			return
		}
		inProgress[family] = true
		for _, dep := range n.deps {
			visit(dep)
		}
		inProgress[family] = false
		done[family] = true
		plan = append(plan, n.entry)
	}

	for _, family := range order {
		visit(family)
	}
	return plan
}
