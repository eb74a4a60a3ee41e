package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnargs/gnargs/internal/diag"
	"github.com/gnargs/gnargs/internal/gnexit"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <dir>",
	Short: "Load and evaluate without printing, failing on any unused override",
	Long: `verify discovers, loads, and evaluates every toolchain under <dir> without
printing the resolved arguments. It exits with the partial code when an
UnusedOverride diagnostic fires and with the error code when loading fails or
any other diagnostic (such as DuplicateDeclaration) fires -- grounded on
cli.Execute/extractExitCode.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(args[0])
	if err != nil {
		return &exitError{err: err, code: gnexit.Error}
	}

	_, _, declErr, err := proj.evaluate(cmd.Context(), flagValues.Args)
	if err != nil {
		return &exitError{err: err, code: gnexit.Error}
	}
	if declErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), declErr.Error())
		code := gnexit.Error
		if declErr.Title == diag.MsgUnusedOverride {
			code = gnexit.Partial
		}
		return &exitError{err: declErr, code: code}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

// exitError carries the exit code cmd/gnargs's main should use, the way the
// teacher's *pipeline.HarvxError carries Code for cli.extractExitCode.
type exitError struct {
	err  error
	code gnexit.Code
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
