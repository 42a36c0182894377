package tomlfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, contents string) *Source {
	t.Helper()

	path := filepath.Join(t.TempDir(), "partners.toml")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	}

	config := viper.New()
	config.Set("partners.path", path)

	source, err := NewSource(config)
	require.NoError(t, err)
	return source
}

func TestSourceReadsRoster(t *testing.T) {
	t.Parallel()

	source := newTestSource(t, strings.Join([]string{
		"[[partners]]",
		"id = \"shelter-north\"",
		"name = \"North Shelter\"",
		"weight = 2.0",
		"",
		"[[partners]]",
		"id = \"pantry-east\"",
		"name = \"East Pantry\"",
		"weight = 1.0",
		"",
	}, "\n"))

	partners, err := source.Partners(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Partner{
		{ID: "shelter-north", Name: "North Shelter", Weight: 2},
		{ID: "pantry-east", Name: "East Pantry", Weight: 1},
	}, partners)
}

func TestSourceMissingFileIsEmptyRoster(t *testing.T) {
	t.Parallel()

	source := newTestSource(t, "")

	partners, err := source.Partners(context.Background())
	require.NoError(t, err)
	assert.Empty(t, partners)
}

func TestSourceRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	source := newTestSource(t, "not toml at all [")

	_, err := source.Partners(context.Background())
	require.ErrorIs(t, err, domain.ErrPartnersInvalid)
}

func TestSourceRejectsInvalidRoster(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "missing id",
			contents: "[[partners]]\nname = \"Nameless\"\nweight = 1.0\n",
		},
		{
			name:     "duplicate id",
			contents: "[[partners]]\nid = \"a\"\nweight = 1.0\n\n[[partners]]\nid = \"a\"\nweight = 2.0\n",
		},
		{
			name:     "negative weight",
			contents: "[[partners]]\nid = \"a\"\nweight = -1.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := newTestSource(t, tt.contents)
			_, err := source.Partners(context.Background())
			require.ErrorIs(t, err, domain.ErrPartnersInvalid)
		})
	}
}
