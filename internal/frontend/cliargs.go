package frontend

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

// cliOriginNode and envOriginNode are the shared synthetic origins for every
// value contributed by the CLI or the environment respectively -- there is
// no single DSL site to blame for a `--args` flag, only the invocation
// itself.
var (
	cliOriginNode = &gnvalue.Node{Name: "<--args flag>"}
	envOriginNode = &gnvalue.Node{Name: "<environment variable>"}
)

// CLIOverrides parses repeated "name=value" pairs, the form a Cobra
// StringArrayVarP("args", ...) flag collects (mirroring config.BindFlags's
// handling of repeated --filter occurrences), into typed Values.
func CLIOverrides(pairs []string) (map[string]gnvalue.Value, error) {
	origin := gnvalue.NewOrigin(cliOriginNode)
	out := make(map[string]gnvalue.Value, len(pairs))

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("gnargs: malformed --args value %q, want name=value", pair)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("gnargs: malformed --args value %q, empty name", pair)
		}
		out[name] = rawToValue(parseRawScalar(raw), origin)
	}
	return out, nil
}

// MergeGlobalOverrides combines the root argument file's [overrides] table
// (lowest precedence), GNARGS_ARG_* environment variables, and --args CLI
// flags (highest precedence) into one global-override map, mirroring
// config.resolver's "merge map, then attribute every key to its source"
// technique from resolver.go -- here the per-key "source" is recorded as
// the value's Origin rather than a config.Source enum.
func MergeGlobalOverrides(fileOverrides map[string]gnvalue.Value, envMap map[string]any, cliMap map[string]any) (map[string]gnvalue.Value, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
		return nil, fmt.Errorf("gnargs: merging env overrides: %w", err)
	}
	if err := k.Load(confmap.Provider(cliMap, "."), nil); err != nil {
		return nil, fmt.Errorf("gnargs: merging CLI overrides: %w", err)
	}

	merged := make(map[string]gnvalue.Value, len(fileOverrides)+len(envMap)+len(cliMap))
	for name, v := range fileOverrides {
		merged[name] = v
	}
	for name, raw := range k.Raw() {
		origin := gnvalue.NewOrigin(envOriginNode)
		if _, fromCLI := cliMap[name]; fromCLI {
			origin = gnvalue.NewOrigin(cliOriginNode)
		}
		merged[name] = rawToValue(raw, origin)
	}
	return merged, nil
}

// rawToValue wraps an already-typed Go scalar (bool, int64, or string, as
// produced by parseRawScalar) in a Value attributed to origin.
func rawToValue(raw any, origin gnvalue.Origin) gnvalue.Value {
	switch t := raw.(type) {
	case bool:
		return gnvalue.Bool(t, origin)
	case int64:
		return gnvalue.Int(t, origin)
	case int:
		return gnvalue.Int(int64(t), origin)
	default:
		return gnvalue.String(fmt.Sprint(raw), origin)
	}
}
