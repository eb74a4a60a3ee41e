package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadArgFile_DeclareOverridesToolchains(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "build_args.gnargs.toml", `
[declare_args]
enable_foo = true
bar_count = 3
label = "default"

[overrides]
enable_foo = false

[toolchains.host]
[toolchains.host.toolchain_args]
bar_count = 7
`)

	af, err := LoadArgFile(path)
	require.NoError(t, err)

	enableFoo, ok := af.Declared["enable_foo"].AsBool()
	require.True(t, ok)
	assert.True(t, enableFoo)

	barCount, ok := af.Declared["bar_count"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(3), barCount)

	overrideFoo, ok := af.Overrides["enable_foo"].AsBool()
	require.True(t, ok)
	assert.False(t, overrideFoo)

	hostOverrides, ok := af.ToolchainOverrides["host"]
	require.True(t, ok)
	hostBarCount, ok := hostOverrides["bar_count"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(7), hostBarCount)
}

func TestLoadArgFile_SameFileReparsedSharesOrigin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "shared.gnargs.toml", `
[declare_args]
x = 1
`)

	first, err := LoadArgFile(path)
	require.NoError(t, err)
	second, err := LoadArgFile(path)
	require.NoError(t, err)

	assert.True(t, first.Declared["x"].Origin().Equal(second.Declared["x"].Origin()),
		"re-parsing the same file must yield the same Origin identity for re-import scenarios")
}

func TestLoadArgFile_ListValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "list.gnargs.toml", `
[declare_args]
flags = ["a", "b", "c"]
`)

	af, err := LoadArgFile(path)
	require.NoError(t, err)

	items, ok := af.Declared["flags"].AsList()
	require.True(t, ok)
	require.Len(t, items, 3)
	s0, _ := items[0].AsString()
	assert.Equal(t, "a", s0)
}

func TestLoadArgFile_UnsupportedNestedTableRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.gnargs.toml", `
[declare_args.nested]
x = 1
`)

	_, err := LoadArgFile(path)
	require.Error(t, err)
}
