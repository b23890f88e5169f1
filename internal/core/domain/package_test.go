package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talon-mods/talon/internal/core/domain"
)

func TestParsePackageRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		want    domain.PackageIdentifier
		wantErr bool
	}{
		{
			name: "family only",
			ref:  "Foo-Bar",
			want: domain.PackageIdentifier{Namespace: "Foo", Name: "Bar"},
		},
		{
			name: "with version",
			ref:  "Foo-Bar-1.0.0",
			want: domain.PackageIdentifier{Namespace: "Foo", Name: "Bar", Version: "1.0.0"},
		},
		{
			name: "dashed name keeps dashes",
			ref:  "Foo-Bar-Baz",
			want: domain.PackageIdentifier{Namespace: "Foo", Name: "Bar-Baz"},
		},
		{
			name: "dashed name with version",
			ref:  "Foo-Bar-Baz-2.1.0",
			want: domain.PackageIdentifier{Namespace: "Foo", Name: "Bar-Baz", Version: "2.1.0"},
		},
		{
			name:    "missing namespace",
			ref:     "Foo",
			wantErr: true,
		},
		{
			name:    "empty",
			ref:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := domain.ParsePackageRef(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPackageRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, domain.CompareVersions("1.0.0", "1.0.0"))
	assert.Equal(t, -1, domain.CompareVersions("1.0.0", "1.1.0"))
	assert.Equal(t, 1, domain.CompareVersions("2.0.0", "1.9.9"))
	assert.Equal(t, -1, domain.CompareVersions("", "0.0.1"))
}

func TestPackageIdentifier_Family(t *testing.T) {
	t.Parallel()

	a := domain.PackageIdentifier{Namespace: "Foo", Name: "Bar", Version: "1.0.0"}
	b := domain.PackageIdentifier{Namespace: "Foo", Name: "Bar", Version: "2.0.0"}

	assert.Equal(t, "Foo-Bar", a.Family())
	assert.Equal(t, "Foo.Bar", a.EnabledKey())
	assert.True(t, a.SameFamily(b))
	assert.Equal(t, "Foo-Bar-1.0.0", a.String())
}
