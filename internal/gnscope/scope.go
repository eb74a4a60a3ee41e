// Package gnscope implements Scope, the lexically nested symbol table that
// carries variables, usage marks, and per-toolchain identity through
// evaluation. Scope is confined to a single evaluating goroutine (see
// internal/evalrun for how multiple Scope trees are fanned out across
// toolchains); it carries no synchronization of its own.
package gnscope

import (
	"fmt"

	"github.com/gnargs/gnargs/internal/gnsettings"
	"github.com/gnargs/gnargs/internal/gnvalue"
)

// entry pairs a stored Value with the origin that most recently wrote it.
// The origin is also available via Value.Origin(); it is kept alongside for
// clarity at call sites that only care about provenance.
type entry struct {
	value  gnvalue.Value
	origin gnvalue.Origin
}

// Scope is a symbol table: a mapping from name to (Value, origin), a set of
// names marked used, an optional parent, and the Settings identifying the
// toolchain that owns it.
type Scope struct {
	parent   *Scope
	values   map[string]entry
	used     map[string]struct{}
	settings *gnsettings.Settings
	readOnly bool
}

// New constructs a Scope bound to settings, optionally nested under parent.
// The Settings reference is stable for the Scope's lifetime; it never
// changes after construction.
func New(settings *gnsettings.Settings, parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		values:   make(map[string]entry),
		used:     make(map[string]struct{}),
		settings: settings,
	}
}

// Settings returns the bound Settings pointer.
func (s *Scope) Settings() *gnsettings.Settings {
	return s.settings
}

// Parent returns the parent Scope, or nil at the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Freeze marks the Scope read-only. This is the mode the evaluator uses when
// an imported file's scope must no longer be mutated once control returns to
// the importer. Freeze is idempotent.
func (s *Scope) Freeze() {
	s.readOnly = true
}

// IsFrozen reports whether SetValue will fail.
func (s *Scope) IsFrozen() bool {
	return s.readOnly
}

// SetValue inserts or replaces name in the local scope. A name present in
// the scope is present exactly once; a second write replaces both the value
// and its recorded origin (last write wins). SetValue fails only when the
// Scope has been frozen.
func (s *Scope) SetValue(name string, v gnvalue.Value) error {
	if s.readOnly {
		return fmt.Errorf("gnscope: cannot set %q: scope is read-only", name)
	}
	s.values[name] = entry{value: v, origin: v.Origin()}
	return nil
}

// GetValue returns the locally stored value for name, or a Null Value if
// absent. GetValue never marks name used; callers that want read-tracking
// call MarkUsed explicitly.
func (s *Scope) GetValue(name string) gnvalue.Value {
	if e, ok := s.values[name]; ok {
		return e.value
	}
	return gnvalue.Null(gnvalue.Unknown)
}

// Lookup is like GetValue but also reports whether name is present locally,
// distinguishing an explicit Null from an absent name.
func (s *Scope) Lookup(name string) (gnvalue.Value, bool) {
	e, ok := s.values[name]
	if !ok {
		return gnvalue.Value{}, false
	}
	return e.value, true
}

// MarkUsed adds name to the used set. It is idempotent and may be called
// before or after the corresponding write; a name that has never been
// written is recorded as used all the same.
func (s *Scope) MarkUsed(name string) {
	s.used[name] = struct{}{}
}

// IsUsed reports whether name has been marked used in this scope.
func (s *Scope) IsUsed(name string) bool {
	_, ok := s.used[name]
	return ok
}

// GetCurrentScopeValues copies the local name->Value mapping into out. It
// does not descend into parents and does not include used-marks.
func (s *Scope) GetCurrentScopeValues(out map[string]gnvalue.Value) {
	for name, e := range s.values {
		out[name] = e.value
	}
}
