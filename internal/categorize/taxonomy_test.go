package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - Rent\n  - Sales\n"), 0o600))

	got, err := LoadTaxonomy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent", "Sales"}, got)
}

func TestLoadTaxonomyErrors(t *testing.T) {
	_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0o600))
	_, err = LoadTaxonomy(path)
	require.Error(t, err)

	path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: {not a list"), 0o600))
	_, err = LoadTaxonomy(path)
	require.Error(t, err)
}
