// Package gnsettings defines Settings, the immutable per-toolchain
// descriptor used throughout the evaluator as a toolchain identity.
package gnsettings

import "sort"

// Settings is an immutable per-toolchain descriptor. A Settings pointer is
// used as the stable, hashable key identifying a toolchain for the lifetime
// of a single Args instance -- any stable hashable token would do; a Go
// pointer is the natural fit.
type Settings struct {
	// Label names the toolchain. An empty label means "default".
	Label string
	// IsDefault marks this Settings as a default toolchain. Multiple
	// distinct *Settings instances may simultaneously carry IsDefault ==
	// true: this occurs when declare_args appears in the root argument
	// file and again in one of its imports, each evaluated against its own
	// Settings for the default toolchain.
	IsDefault bool
}

// Default constructs a new Settings instance for the default toolchain.
// Each call returns a distinct pointer; callers that need a single shared
// default toolchain should call this once and reuse the result.
func Default() *Settings {
	return &Settings{Label: "", IsDefault: true}
}

// Named constructs a new Settings instance for a non-default toolchain
// identified by label. An empty label is invalid for a named toolchain; such
// a Settings sorts after every default and before every other named
// toolchain. Callers should not pass "".
func Named(label string) *Settings {
	return &Settings{Label: label, IsDefault: false}
}

// Less reports whether a sorts before b under the deterministic ordering
// toolchains must evaluate in: defaults sort before non-defaults; ties are
// broken by label, lexicographically ascending.
func Less(a, b *Settings) bool {
	if a.IsDefault != b.IsDefault {
		return a.IsDefault
	}
	return a.Label < b.Label
}

// SortToolchains sorts keys in place using Less. The sort is stable so that
// toolchains with identical (IsDefault, Label) pairs -- distinct Settings
// pointers representing multiple default toolchains -- retain their
// original relative order, giving a deterministic total order overall.
func SortToolchains(keys []*Settings) {
	sort.SliceStable(keys, func(i, j int) bool {
		return Less(keys[i], keys[j])
	})
}
