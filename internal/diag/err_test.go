package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

func TestErr_ErrorIncludesTitleMessageAndOrigin(t *testing.T) {
	t.Parallel()
	origin := gnvalue.NewOrigin(&gnvalue.Node{Name: "build_args.toml:5"})
	e := New(origin, MsgDuplicateDeclaration, "enable_foo")
	assert.Contains(t, e.Error(), MsgDuplicateDeclaration)
	assert.Contains(t, e.Error(), "enable_foo")
	assert.Contains(t, e.Error(), "build_args.toml:5")
}

func TestErr_WithSubChainsAndUnwraps(t *testing.T) {
	t.Parallel()
	prior := New(gnvalue.NewOrigin(&gnvalue.Node{Name: "first"}), "prior declaration", "")
	dup := New(gnvalue.NewOrigin(&gnvalue.Node{Name: "second"}), MsgDuplicateDeclaration, "x").WithSub(prior)

	assert.Len(t, dup.Sub, 1)
	unwrapped := dup.Unwrap()
	assert.Len(t, unwrapped, 1)
	assert.Same(t, prior, unwrapped[0])
}

func TestErr_ZeroOriginOmitsLocationSuffix(t *testing.T) {
	t.Parallel()
	e := New(gnvalue.Unknown, MsgUnusedOverride, "c")
	assert.NotContains(t, e.Error(), " (at ")
}
