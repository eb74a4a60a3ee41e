// Package frontend loads build-argument files from disk and turns their raw
// TOML contents into the typed, origin-tagged values internal/gnargs and
// internal/gnscope operate on. It is the only package in this module that
// touches the filesystem or a parser; everything downstream works purely
// with gnvalue.Value and friends.
package frontend

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

// ArgFile is the decoded, origin-tagged form of a single build-argument
// file: a top-level [declare_args] table, a top-level [overrides] table
// (the project's own default overrides, equivalent to the root build file's
// unconditional assignments), and zero or more [toolchains.<label>] tables
// each carrying a toolchain_args sub-table of toolchain-scoped overrides.
type ArgFile struct {
	Path               string
	Declared           map[string]gnvalue.Value
	Overrides          map[string]gnvalue.Value
	ToolchainOverrides map[string]map[string]gnvalue.Value
}

// rawArgFile mirrors ArgFile's shape for TOML decoding, before values are
// converted to gnvalue.Value and attributed an Origin.
type rawArgFile struct {
	DeclareArgs map[string]any          `toml:"declare_args"`
	Overrides   map[string]any          `toml:"overrides"`
	Toolchains  map[string]rawToolchain `toml:"toolchains"`
}

type rawToolchain struct {
	ToolchainArgs map[string]any `toml:"toolchain_args"`
}

// LoadArgFile reads and decodes a build-argument file at path. Unknown TOML
// keys are logged and otherwise ignored, a forward-compatible stance: a
// newer arg file read by an older binary should not fail outright.
func LoadArgFile(path string) (*ArgFile, error) {
	var raw rawArgFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("gnargs: parse arg file %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)

	declared, err := convertTable(path, "declare_args", raw.DeclareArgs)
	if err != nil {
		return nil, err
	}
	overrides, err := convertTable(path, "overrides", raw.Overrides)
	if err != nil {
		return nil, err
	}

	toolchainOverrides := make(map[string]map[string]gnvalue.Value, len(raw.Toolchains))
	for label, tc := range raw.Toolchains {
		section := fmt.Sprintf("toolchains.%s.toolchain_args", label)
		vals, err := convertTable(path, section, tc.ToolchainArgs)
		if err != nil {
			return nil, err
		}
		toolchainOverrides[label] = vals
	}

	return &ArgFile{
		Path:               path,
		Declared:           declared,
		Overrides:          overrides,
		ToolchainOverrides: toolchainOverrides,
	}, nil
}

// warnUndecodedKeys logs, but does not fail on, TOML keys that mapped to no
// field in rawArgFile.
func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	slog.Warn("unknown arg-file keys will be ignored",
		"source", source,
		"keys", strings.Join(keys, ", "),
	)
}

// convertTable converts one decoded TOML table into a name->Value map, where
// section identifies the table for origin labelling (e.g. "declare_args" or
// "toolchains.host.toolchain_args").
func convertTable(path, section string, table map[string]any) (map[string]gnvalue.Value, error) {
	out := make(map[string]gnvalue.Value, len(table))
	for name, raw := range table {
		key := section + "." + name
		v, err := convertValue(path, key, raw)
		if err != nil {
			return nil, fmt.Errorf("gnargs: %s:%s: %w", path, key, err)
		}
		out[name] = v
	}
	return out, nil
}

// convertValue maps a decoded TOML scalar or array onto the closed Value
// variant set. Tables (nested TOML maps) are rejected: the build-argument
// DSL this module evaluates has no scope-literal syntax for arg files to
// produce, so a scope Value can only ever arise from evalrun snapshotting a
// Scope, never from parsing.
func convertValue(path, key string, raw any) (gnvalue.Value, error) {
	origin := originFor(path, key)
	switch t := raw.(type) {
	case bool:
		return gnvalue.Bool(t, origin), nil
	case int64:
		return gnvalue.Int(t, origin), nil
	case string:
		return gnvalue.String(t, origin), nil
	case []any:
		items := make([]gnvalue.Value, 0, len(t))
		for i, elem := range t {
			ev, err := convertValue(path, fmt.Sprintf("%s[%d]", key, i), elem)
			if err != nil {
				return gnvalue.Value{}, err
			}
			items = append(items, ev)
		}
		return gnvalue.List(items, origin), nil
	case nil:
		return gnvalue.Null(origin), nil
	default:
		return gnvalue.Value{}, fmt.Errorf("unsupported value type %T for %q", raw, key)
	}
}
