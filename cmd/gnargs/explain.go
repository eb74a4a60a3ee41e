package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gnargs/gnargs/internal/spellcheck"
)

var explainCmd = &cobra.Command{
	Use:   "explain <name>",
	Short: "Explain how one build argument resolves",
	Long: `explain prints the resolved value for a single argument name (the first
override or declared default found across every toolchain, in default-first,
label-ascending order), including a spelling suggestion when the name is
absent everywhere -- grounded on cli.profilesExplainCmd.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	name := args[0]

	proj, err := loadProject(flagValues.Dir)
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

	out := cmd.OutOrStdout()
	v, ok := a.GetArgFromAllArguments(name)
	if !ok {
		all := a.GetAllArguments()
		candidates := make([]string, 0, len(all))
		for declared := range all {
			candidates = append(candidates, declared)
		}
		sort.Strings(candidates)

		if suggestion := spellcheck.Suggest(name, candidates); suggestion != "" {
			fmt.Fprintf(out, "%s is not declared in any toolchain. Did you mean %q?\n", name, suggestion)
		} else {
			fmt.Fprintf(out, "%s is not declared in any toolchain\n", name)
		}
		return nil
	}

	fmt.Fprintf(out, "%s = %s\n", name, renderValue(v))
	return nil
}
