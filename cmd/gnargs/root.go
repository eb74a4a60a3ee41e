// Package main implements the gnargs CLI: discover, load, and evaluate
// build-argument files across every toolchain, then report the resolved
// arguments or a diagnostic.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnargs/gnargs/internal/gnargscli"
	"github.com/gnargs/gnargs/internal/gnexit"
)

var flagValues *gnargscli.FlagValues

var rootCmd = &cobra.Command{
	Use:   "gnargs",
	Short: "Resolve build arguments across toolchains.",
	Long: `gnargs resolves GN-style declare_args/override precedence across one or
more toolchains, detecting duplicate declarations and unused overrides ahead
of a real build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := gnargscli.ValidateFlags(flagValues, cmd); err != nil {
			return err
		}
		level := gnargscli.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := gnargscli.ResolveLogFormat()
		gnargscli.SetupLogging(level, format)
		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func init() {
	flagValues = gnargscli.BindFlags(rootCmd)
}

// Execute runs the root command and returns a process exit code.
// If the error is an *exitError, its code is used; otherwise any non-nil
// error yields gnexit.Error, mirroring cli.extractExitCode.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(gnexit.Success)
}

func extractExitCode(err error) int {
	if err == nil {
		return int(gnexit.Success)
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return int(ee.code)
	}
	return int(gnexit.Error)
}

func main() {
	os.Exit(Execute())
}
