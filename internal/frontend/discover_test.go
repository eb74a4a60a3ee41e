package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverArgFiles_FindsMatchesRecursively(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o755))

	writeFile(t, root, "root.gnargs.toml", "[declare_args]\n")
	writeFile(t, filepath.Join(root, "sub"), "mid.gnargs.toml", "[declare_args]\n")
	writeFile(t, filepath.Join(root, "sub", "deeper"), "leaf.gnargs.toml", "[declare_args]\n")
	writeFile(t, root, "unrelated.txt", "hello")

	matches, err := DiscoverArgFiles(root, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)
}

func TestDiscoverArgFiles_PrunesIgnoredSubtree(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))

	writeFile(t, root, "root.gnargs.toml", "[declare_args]\n")
	writeFile(t, filepath.Join(root, "vendor"), "third_party.gnargs.toml", "[declare_args]\n")
	writeFile(t, root, ".gnargsignore", "vendor/\n")

	ignore, err := NewImportIgnore(root)
	require.NoError(t, err)

	matches, err := DiscoverArgFiles(root, ignore)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0], "root.gnargs.toml")
}
