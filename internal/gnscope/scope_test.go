package gnscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnargs/gnargs/internal/gnsettings"
	"github.com/gnargs/gnargs/internal/gnvalue"
)

func TestScope_SetGetRoundtrip(t *testing.T) {
	t.Parallel()
	s := New(gnsettings.Default(), nil)
	origin := gnvalue.NewOrigin(&gnvalue.Node{Name: "a"})
	require.NoError(t, s.SetValue("x", gnvalue.Int(7, origin)))

	v := s.GetValue("x")
	n, ok := v.AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)
}

func TestScope_GetValueAbsentReturnsNull(t *testing.T) {
	t.Parallel()
	s := New(gnsettings.Default(), nil)
	v := s.GetValue("missing")
	assert.Equal(t, gnvalue.KindNull, v.Kind())

	_, ok := s.Lookup("missing")
	assert.False(t, ok)
}

func TestScope_LastWriteWinsAndUpdatesOrigin(t *testing.T) {
	t.Parallel()
	s := New(gnsettings.Default(), nil)
	o1 := gnvalue.NewOrigin(&gnvalue.Node{Name: "first"})
	o2 := gnvalue.NewOrigin(&gnvalue.Node{Name: "second"})

	require.NoError(t, s.SetValue("x", gnvalue.Int(1, o1)))
	require.NoError(t, s.SetValue("x", gnvalue.Int(2, o2)))

	v := s.GetValue("x")
	n, _ := v.AsInt()
	assert.Equal(t, int64(2), n)
	assert.True(t, v.Origin().Equal(o2))
}

func TestScope_MarkUsedIsIdempotentAndOrderIndependent(t *testing.T) {
	t.Parallel()
	s := New(gnsettings.Default(), nil)

	// MarkUsed before the write exists.
	s.MarkUsed("never_written")
	assert.True(t, s.IsUsed("never_written"))

	s.MarkUsed("x")
	s.MarkUsed("x")
	assert.True(t, s.IsUsed("x"))

	assert.False(t, s.IsUsed("untouched"))
}

func TestScope_FreezeRejectsWrites(t *testing.T) {
	t.Parallel()
	s := New(gnsettings.Default(), nil)
	require.NoError(t, s.SetValue("x", gnvalue.Int(1, gnvalue.Unknown)))
	s.Freeze()

	err := s.SetValue("y", gnvalue.Int(2, gnvalue.Unknown))
	assert.Error(t, err)

	// Existing values remain readable after freezing.
	v := s.GetValue("x")
	n, _ := v.AsInt()
	assert.Equal(t, int64(1), n)
}

func TestScope_GetCurrentScopeValuesDoesNotDescendOrIncludeUsedMarks(t *testing.T) {
	t.Parallel()
	parent := New(gnsettings.Default(), nil)
	require.NoError(t, parent.SetValue("from_parent", gnvalue.Int(1, gnvalue.Unknown)))

	child := New(gnsettings.Default(), parent)
	require.NoError(t, child.SetValue("local", gnvalue.Int(2, gnvalue.Unknown)))
	child.MarkUsed("local")

	out := make(map[string]gnvalue.Value)
	child.GetCurrentScopeValues(out)

	assert.Len(t, out, 1)
	_, hasLocal := out["local"]
	assert.True(t, hasLocal)
	_, hasParent := out["from_parent"]
	assert.False(t, hasParent)
}

func TestScope_SettingsStableForLifetime(t *testing.T) {
	t.Parallel()
	settings := gnsettings.Named("host")
	s := New(settings, nil)
	assert.Same(t, settings, s.Settings())
}

func TestScope_ParentLinkage(t *testing.T) {
	t.Parallel()
	root := New(gnsettings.Default(), nil)
	child := New(gnsettings.Default(), root)
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
}
