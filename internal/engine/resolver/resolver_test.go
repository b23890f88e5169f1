package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports/mocks"
	"github.com/talon-mods/talon/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func id(ns, name, version string) domain.PackageIdentifier {
	return domain.PackageIdentifier{Namespace: ns, Name: name, Version: version}
}

func entry(pkg domain.PackageIdentifier, deps ...domain.PackageIdentifier) *domain.RemoteIndexEntry {
	return &domain.RemoteIndexEntry{
		Identifier:   pkg,
		DownloadURL:  "https://example.test/" + pkg.String() + ".zip",
		Dependencies: deps,
	}
}

func TestResolve_DependencyBeforeDependent(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	baz := id("Foo", "Baz", "2.0.0")

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, baz), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Baz", "2.0.0").Return(entry(baz), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, nil)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, []string{"Foo-Baz", "Foo-Bar"}, plan.Families())
}

func TestResolve_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().Lookup(gomock.Any(), "Foo-Missing").Return(nil, nil)

	_, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{id("Foo", "Missing", "")}, index, nil)
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestResolve_RequestedVersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	_, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{
		id("Foo", "Bar", "1.0.0"),
		id("Foo", "Bar", "1.1.0"),
	}, index, nil)
	require.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestResolve_SelfDependencyFiltered(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, bar), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Bar"}, plan.Families())
}

func TestResolve_RuntimeDependencySkipped(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	loader := id(domain.LoaderNamespace, domain.LoaderName, "1.9.7")
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, loader), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Bar"}, plan.Families())
}

func TestResolve_CustomRuntimePredicate(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	alt := id("Alt", "Loader", "0.1.0")
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, alt), nil)

	plan, err := resolver.Resolve(
		context.Background(),
		[]domain.PackageIdentifier{bar},
		index,
		nil,
		resolver.WithRuntimePredicate(func(dep domain.PackageIdentifier) bool {
			return dep.Name == "Loader"
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Bar"}, plan.Families())
}

func TestResolve_InstalledDependencySkipped(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	baz := id("Foo", "Baz", "2.0.0")
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, baz), nil)

	installed := []domain.InstalledMod{
		{Manifest: domain.Manifest{Namespace: "Foo", Name: "Baz", Version: "2.1.0"}},
	}

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, installed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Bar"}, plan.Families())
}

func TestResolve_InstalledOlderVersionStillFetched(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	baz := id("Foo", "Baz", "2.0.0")
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, baz), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Baz", "2.0.0").Return(entry(baz), nil)

	installed := []domain.InstalledMod{
		{Manifest: domain.Manifest{Namespace: "Foo", Name: "Baz", Version: "1.5.0"}},
	}

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, installed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Baz", "Foo-Bar"}, plan.Families())
}

func TestResolve_SharedDependencyDeduplicated(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := id("Foo", "A", "1.0.0")
	b := id("Foo", "B", "1.0.0")
	shared := id("Foo", "Shared", "1.0.0")
	sharedNewer := id("Foo", "Shared", "1.2.0")

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-A", "1.0.0").Return(entry(a, shared), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-B", "1.0.0").Return(entry(b, sharedNewer), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Shared", "1.0.0").Return(entry(shared), nil)
	// The higher transitive requirement re-selects the entry without re-expanding.
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Shared", "1.2.0").Return(entry(sharedNewer), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{a, b}, index, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-Shared", "Foo-A", "Foo-B"}, plan.Families())

	for _, e := range plan {
		if e.Identifier.Family() == "Foo-Shared" {
			assert.Equal(t, "1.2.0", e.Identifier.Version)
		}
	}
}

func TestResolve_RequestedVersionBeatsTransitive(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := id("Foo", "A", "1.0.0")
	sharedOld := id("Foo", "Shared", "1.0.0")
	sharedNewer := id("Foo", "Shared", "2.0.0")

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Shared", "1.0.0").Return(entry(sharedOld), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-A", "1.0.0").Return(entry(a, sharedNewer), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{sharedOld, a}, index, nil)
	require.NoError(t, err)

	for _, e := range plan {
		if e.Identifier.Family() == "Foo-Shared" {
			assert.Equal(t, "1.0.0", e.Identifier.Version)
		}
	}
}

func TestResolve_CycleBroken(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := id("Foo", "A", "1.0.0")
	b := id("Foo", "B", "1.0.0")

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-A", "1.0.0").Return(entry(a, b), nil)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-B", "1.0.0").Return(entry(b, a), nil)

	plan, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{a}, index, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo-B", "Foo-A"}, plan.Families())
}

func TestResolve_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	bar := id("Foo", "Bar", "1.0.0")
	baz := id("Foo", "Baz", "2.0.0")

	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Bar", "1.0.0").Return(entry(bar, baz), nil).Times(2)
	index.EXPECT().LookupVersion(gomock.Any(), "Foo-Baz", "2.0.0").Return(entry(baz), nil).Times(2)

	first, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, nil)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), []domain.PackageIdentifier{bar}, index, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
