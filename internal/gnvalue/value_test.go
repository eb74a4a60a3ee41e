package gnvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_EqualityIgnoresOrigin(t *testing.T) {
	t.Parallel()
	o1 := NewOrigin(&Node{Name: "a"})
	o2 := NewOrigin(&Node{Name: "b"})
	assert.True(t, Int(3, o1).Equal(Int(3, o2)))
	assert.False(t, Int(3, o1).Equal(Int(4, o1)))
}

func TestValue_KindMismatchNeverEqual(t *testing.T) {
	t.Parallel()
	o := Unknown
	assert.False(t, Int(0, o).Equal(Bool(false, o)))
	assert.False(t, String("", o).Equal(Null(o)))
}

func TestValue_WithOriginReplacesProvenanceOnly(t *testing.T) {
	t.Parallel()
	o1 := NewOrigin(&Node{Name: "first"})
	o2 := NewOrigin(&Node{Name: "second"})
	v := String("hello", o1).WithOrigin(o2)
	s, ok := v.AsString()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
	assert.True(t, v.Origin().Equal(o2))
}

func TestValue_Accessors_WrongKindReturnsFalse(t *testing.T) {
	t.Parallel()
	v := Bool(true, Unknown)
	_, ok := v.AsInt()
	assert.False(t, ok)
	_, ok = v.AsString()
	assert.False(t, ok)
	_, ok = v.AsList()
	assert.False(t, ok)
}

func TestValue_ListCopiesOnConstructionAndAccess(t *testing.T) {
	t.Parallel()
	items := []Value{Int(1, Unknown), Int(2, Unknown)}
	v := List(items, Unknown)
	items[0] = Int(99, Unknown)

	got, ok := v.AsList()
	assert.True(t, ok)
	n, _ := got[0].AsInt()
	assert.Equal(t, int64(1), n, "mutating the source slice must not affect the Value")

	got[1] = Int(42, Unknown)
	got2, _ := v.AsList()
	n2, _ := got2[1].AsInt()
	assert.Equal(t, int64(2), n2, "mutating the returned slice must not affect the Value")
}

func TestValue_ScopeSnapshotStructuralEquality(t *testing.T) {
	t.Parallel()
	a := ScopeSnapshot(map[string]Value{"x": Int(1, Unknown)}, Unknown)
	b := ScopeSnapshot(map[string]Value{"x": Int(1, NewOrigin(&Node{Name: "other"}))}, Unknown)
	assert.True(t, a.Equal(b))

	c := ScopeSnapshot(map[string]Value{"x": Int(2, Unknown)}, Unknown)
	assert.False(t, a.Equal(c))
}

func TestOrigin_IdentityNotName(t *testing.T) {
	t.Parallel()
	n1 := &Node{Name: "dup"}
	n2 := &Node{Name: "dup"}
	o1 := NewOrigin(n1)
	o2 := NewOrigin(n2)
	assert.False(t, o1.Equal(o2), "origins with identical names but distinct node identity must differ")
	assert.True(t, o1.Equal(NewOrigin(n1)))
}

func TestOrigin_ZeroValueIsUnknown(t *testing.T) {
	t.Parallel()
	var o Origin
	assert.True(t, o.IsZero())
	assert.Equal(t, "<unknown>", o.String())
}
