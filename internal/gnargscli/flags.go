// Package gnargscli binds Cobra flags and sets up slog logging for
// cmd/gnargs.
package gnargscli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// FlagValues collects the parsed global flag values shared by every
// cmd/gnargs subcommand.
type FlagValues struct {
	Dir     string
	Args    []string
	Verbose bool
	Quiet   bool
}

// BindFlags registers the global persistent flags on cmd and returns a
// FlagValues pointer populated once Cobra parses them, mirroring
// config.BindFlags's pattern.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Dir, "dir", "d", ".", "root directory to discover *.gnargs.toml files under")
	pf.StringArrayVar(&fv.Args, "args", nil, "build argument override as name=value (repeatable)")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress all output except errors")

	return fv
}

// ValidateFlags applies environment-variable fallbacks and checks mutual
// exclusion, mirroring config.ValidateFlags.
func ValidateFlags(fv *FlagValues, cmd *cobra.Command) error {
	applyEnvOverrides(fv, cmd)

	if fv.Verbose && fv.Quiet {
		return errMutuallyExclusive
	}
	return nil
}

var errMutuallyExclusive = &flagError{"--verbose and --quiet are mutually exclusive"}

type flagError struct{ msg string }

func (e *flagError) Error() string { return e.msg }

func applyEnvOverrides(fv *FlagValues, cmd *cobra.Command) {
	if v := strings.TrimSpace(os.Getenv("GNARGS_DIR")); v != "" && !cmd.Flags().Changed("dir") {
		fv.Dir = v
	}
	if os.Getenv("GNARGS_VERBOSE") == "1" && !cmd.Flags().Changed("verbose") {
		fv.Verbose = true
	}
	if os.Getenv("GNARGS_QUIET") == "1" && !cmd.Flags().Changed("quiet") {
		fv.Quiet = true
	}
}
