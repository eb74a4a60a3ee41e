package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gnargs/gnargs/internal/gnargs"
)

var evalCmd = &cobra.Command{
	Use:   "eval <dir>",
	Short: "Discover, load, and evaluate every toolchain under <dir>",
	Long: `eval discovers every *.gnargs.toml file under <dir>, evaluates declare_args
and overrides across the default toolchain and every named toolchain found,
and prints the resolved arguments -- one line per name, annotated with
whether it carries a global override, grounded on config.ShowProfile's
annotated-TOML-with-source-comments rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(args[0])
	if err != nil {
		return err
	}

	a, _, declErr, err := proj.evaluate(cmd.Context(), flagValues.Args)
	if err != nil {
		return err
	}
	if declErr != nil {
		return declErr
	}

	printResolvedArguments(cmd, a)
	return nil
}

// printResolvedArguments renders GetAllArguments() one line per name, sorted
// for determinism, annotated the way config.ShowProfile annotates each field
// with its source.
func printResolvedArguments(cmd *cobra.Command, a *gnargs.Args) {
	out := cmd.OutOrStdout()
	all := a.GetAllArguments()

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := all[name]
		if entry.HasOverride {
			fmt.Fprintf(out, "%s = %s  # override (default %s)\n", name, renderValue(entry.Override), renderValue(entry.Default))
		} else {
			fmt.Fprintf(out, "%s = %s  # default\n", name, renderValue(entry.Default))
		}
	}
}
