// Package gnargs implements Args, the process-wide, thread-safe registry of
// declared build arguments and their overrides. Args is the central
// subsystem: it owns command-line overrides, the accumulated superset of
// every override ever observed, and, keyed by toolchain Settings, both the
// declared arguments and the toolchain-scoped overrides.
//
// A single Args instance is created once per evaluation run and shared,
// read-write, across every goroutine evaluating a toolchain context (see
// internal/evalrun). All four maps are protected by one mutex; every public
// method here holds it for its full duration -- critical sections stay
// short, so one mutex is sufficient without further sharding.
package gnargs

import (
	"sort"
	"sync"

	"github.com/gnargs/gnargs/internal/diag"
	"github.com/gnargs/gnargs/internal/gnscope"
	"github.com/gnargs/gnargs/internal/gnsettings"
	"github.com/gnargs/gnargs/internal/gnvalue"
	"github.com/gnargs/gnargs/internal/spellcheck"
)

// declEntry pairs a declared default Value with the origin of the
// declare_args site that introduced it. The origin is also reachable via
// Value.Origin(); it is kept explicit here so duplicate-origin comparisons
// read directly off the field that defines them.
type declEntry struct {
	Value  gnvalue.Value
	Origin gnvalue.Origin
}

// ArgEntry is one row of the bulk view returned by GetAllArguments: a
// declared default plus whether (and what) a global override supplies.
type ArgEntry struct {
	Default     gnvalue.Value
	HasOverride bool
	Override    gnvalue.Value
}

// Args is the central registry of declared build arguments and overrides.
type Args struct {
	mu sync.Mutex

	// overrides holds global (non-toolchain-specific) overrides: command-line
	// --args plus "default" overrides from the root argument file.
	overrides map[string]gnvalue.Value

	// allOverrides is a superset of overrides: every override ever observed,
	// including per-toolchain overrides. Used solely for the unused-override
	// audit; AddDefaultArgOverrides deliberately does not populate it.
	allOverrides map[string]gnvalue.Value

	// declaredPerToolchain maps a toolchain's Settings to the names declared
	// against any Scope owned by that Settings, and their default values.
	declaredPerToolchain map[*gnsettings.Settings]map[string]declEntry

	// toolchainOverrides maps a toolchain's Settings to the overrides scoped
	// to that single toolchain (the toolchain_args block).
	toolchainOverrides map[*gnsettings.Settings]map[string]gnvalue.Value
}

// New constructs an empty Args registry.
func New() *Args {
	return &Args{
		overrides:            make(map[string]gnvalue.Value),
		allOverrides:         make(map[string]gnvalue.Value),
		declaredPerToolchain: make(map[*gnsettings.Settings]map[string]declEntry),
		toolchainOverrides:   make(map[*gnsettings.Settings]map[string]gnvalue.Value),
	}
}

// AddArgOverride registers a single global override, writing to both
// overrides and allOverrides.
func (a *Args) AddArgOverride(name string, v gnvalue.Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides[name] = v
	a.allOverrides[name] = v
}

// AddArgOverrides is the bulk form of AddArgOverride; semantics are
// identical per entry.
func (a *Args) AddArgOverrides(m map[string]gnvalue.Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, v := range m {
		a.overrides[name] = v
		a.allOverrides[name] = v
	}
}

// AddDefaultArgOverrides registers overrides sourced from the root argument
// file's own default assignments. These are written to overrides only, never
// to allOverrides: a default override exists precisely to provide a value
// that may or may not be consumed, so it must never be flagged as unused by
// VerifyAllOverridesUsed.
func (a *Args) AddDefaultArgOverrides(m map[string]gnvalue.Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, v := range m {
		a.overrides[name] = v
	}
}

// GetArgOverride returns the entry from allOverrides, if any.
func (a *Args) GetArgOverride(name string) (gnvalue.Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.allOverrides[name]
	return v, ok
}

// GetArgFromAllArguments resolves name: first against allOverrides, then
// against each toolchain's declared defaults in sorted (default-first,
// label-ascending) order, returning the first hit. Returns false if name is
// absent everywhere.
func (a *Args) GetArgFromAllArguments(name string) (gnvalue.Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if v, ok := a.allOverrides[name]; ok {
		return v, true
	}
	for _, s := range a.sortedToolchainsLocked() {
		if de, ok := a.declaredPerToolchain[s][name]; ok {
			return de.Value, true
		}
	}
	return gnvalue.Value{}, false
}

// SetupRootScope performs the system-variable seeding sequence, atomically
// under the lock:
//
//  1. Seed sysVars into dest.
//  2. Mark those names as declared arguments for dest's toolchain, and used.
//  3. Apply the global overrides restricted to names already declared in
//     dest -- i.e. only the just-seeded system variables at this point.
//  4. Apply toolchainOverrides under the same restriction.
//  5. Store toolchainOverrides verbatim into toolchainOverrides[dest.Settings()].
//  6. Merge toolchainOverrides into allOverrides.
//
// sysVars is supplied by the caller (internal/frontend detects host_os and
// host_cpu via runtime.GOOS/GOARCH) rather than detected here, keeping
// platform detection out of Args's locked critical section.
//
// Overrides of names not yet declared are deliberately NOT applied here:
// they remain pending in overrides/toolchainOverrides and are applied later
// by DeclareArgs when the corresponding declare_args block is evaluated.
// This is the central non-obvious invariant of the whole subsystem.
func (a *Args) SetupRootScope(dest *gnscope.Scope, sysVars map[string]gnvalue.Value, toolchainOverrides map[string]gnvalue.Value) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings := dest.Settings()
	declared, ok := a.declaredPerToolchain[settings]
	if !ok {
		declared = make(map[string]declEntry)
		a.declaredPerToolchain[settings] = declared
	}

	// 1 & 2: seed and declare system variables, marking them used.
	for name, v := range sysVars {
		if err := dest.SetValue(name, v); err != nil {
			return err
		}
		declared[name] = declEntry{Value: v, Origin: v.Origin()}
		dest.MarkUsed(name)
	}

	// 3: global overrides, restricted to names already declared (the system
	// variables just seeded).
	for name := range declared {
		if v, ok := a.overrides[name]; ok {
			if err := dest.SetValue(name, v); err != nil {
				return err
			}
		}
	}

	// 4: toolchain overrides, same restriction.
	for name := range declared {
		if v, ok := toolchainOverrides[name]; ok {
			if err := dest.SetValue(name, v); err != nil {
				return err
			}
		}
	}

	// 5: store toolchainOverrides verbatim for this toolchain.
	stored := make(map[string]gnvalue.Value, len(toolchainOverrides))
	for name, v := range toolchainOverrides {
		stored[name] = v
	}
	a.toolchainOverrides[settings] = stored

	// 6: merge into allOverrides.
	for name, v := range toolchainOverrides {
		a.allOverrides[name] = v
	}

	return nil
}

// DeclareArgs processes a declare_args block: argsMap maps each declared
// name to its default Value (the Value's own Origin is the declaration
// site). For each name:
//
//   - Duplicate check: if already declared for this toolchain under a
//     different origin, returns a DuplicateDeclaration Err carrying both
//     origins and does not process the remaining entries.
//   - Same-origin re-declaration (an imported file evaluated under multiple
//     toolchains) is silently accepted.
//   - The effective value is written to scopeToSet in priority order:
//     toolchain override, then global override, then the declared default.
//   - The name is always marked used in scopeToSet, regardless of which
//     branch fired.
//
// Returns nil on success.
func (a *Args) DeclareArgs(argsMap map[string]gnvalue.Value, scopeToSet *gnscope.Scope) *diag.Err {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings := scopeToSet.Settings()
	declared, ok := a.declaredPerToolchain[settings]
	if !ok {
		declared = make(map[string]declEntry)
		a.declaredPerToolchain[settings] = declared
	}

	for _, name := range sortedKeysOfValueMap(argsMap) {
		v := argsMap[name]

		if existing, ok := declared[name]; ok {
			if !existing.Origin.Equal(v.Origin()) {
				return diag.New(v.Origin(), diag.MsgDuplicateDeclaration, name).
					WithSub(diag.New(existing.Origin, "previous declaration", name))
			}
			// Same origin: accepted silently, no re-insert needed.
		} else {
			declared[name] = declEntry{Value: v, Origin: v.Origin()}
		}

		effective := a.effectiveValueLocked(settings, name, declared[name].Value)
		if err := scopeToSet.SetValue(name, effective); err != nil {
			return diag.New(v.Origin(), "failed to apply declared argument", err.Error())
		}
		scopeToSet.MarkUsed(name)
	}

	return nil
}

// effectiveValueLocked resolves the value to write for name in priority
// order: toolchain override, then global override, then the declared
// default. Must be called with a.mu held.
func (a *Args) effectiveValueLocked(settings *gnsettings.Settings, name string, def gnvalue.Value) gnvalue.Value {
	if to, ok := a.toolchainOverrides[settings]; ok {
		if v, ok := to[name]; ok {
			return v
		}
	}
	if v, ok := a.overrides[name]; ok {
		return v
	}
	return def
}

// VerifyAllOverridesUsed reports whether every override ever observed
// (allOverrides) corresponds to a name declared in at least one toolchain.
// Default overrides (AddDefaultArgOverrides) are excluded from this check by
// construction -- they never reach allOverrides.
//
// On failure, exactly one representative offending name is reported, with a
// spelling suggestion computed against the union of all declared names
// across every toolchain.
func (a *Args) VerifyAllOverridesUsed() *diag.Err {
	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := make(map[string]gnvalue.Value, len(a.allOverrides))
	for name, v := range a.allOverrides {
		remaining[name] = v
	}

	allDeclaredNames := make(map[string]struct{})
	for _, declared := range a.declaredPerToolchain {
		for name := range declared {
			delete(remaining, name)
			allDeclaredNames[name] = struct{}{}
		}
	}

	if len(remaining) == 0 {
		return nil
	}

	offenderNames := make([]string, 0, len(remaining))
	for name := range remaining {
		offenderNames = append(offenderNames, name)
	}
	sort.Strings(offenderNames)
	offender := offenderNames[0]

	candidates := make([]string, 0, len(allDeclaredNames))
	for name := range allDeclaredNames {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	suggestion := spellcheck.Suggest(offender, candidates)
	message := offender
	if suggestion != "" {
		message = `Did you mean "` + suggestion + `"? ` + offender
	}

	return diag.New(remaining[offender].Origin(), diag.MsgUnusedOverride, message)
}

// GetAllArguments returns a map name -> (default, hasOverride, override),
// built by walking toolchains in sorted (default-first) order and inserting
// their declared defaults; later toolchains never overwrite an earlier
// entry, so the default toolchain's default is authoritative. Overrides
// whose name is not declared anywhere are omitted (they surface only via
// VerifyAllOverridesUsed).
func (a *Args) GetAllArguments() map[string]ArgEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make(map[string]ArgEntry)
	for _, s := range a.sortedToolchainsLocked() {
		for name, de := range a.declaredPerToolchain[s] {
			if _, exists := result[name]; !exists {
				result[name] = ArgEntry{Default: de.Value}
			}
		}
	}

	for name, v := range a.overrides {
		if entry, ok := result[name]; ok {
			entry.HasOverride = true
			entry.Override = v
			result[name] = entry
		}
	}

	return result
}

// GetSortedToolchains returns every toolchain Settings that SetupRootScope or
// DeclareArgs has seen (including one whose declared set is empty), in the
// deterministic default-first, label-ascending order defined by
// gnsettings.Less.
func (a *Args) GetSortedToolchains() []*gnsettings.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortedToolchainsLocked()
}

// sortedToolchainsLocked must be called with a.mu held.
func (a *Args) sortedToolchainsLocked() []*gnsettings.Settings {
	keys := make([]*gnsettings.Settings, 0, len(a.declaredPerToolchain))
	for s := range a.declaredPerToolchain {
		keys = append(keys, s)
	}
	gnsettings.SortToolchains(keys)
	return keys
}

func sortedKeysOfValueMap(m map[string]gnvalue.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
