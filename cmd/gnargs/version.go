package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnargs/gnargs/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "gnargs %s (commit %s, built %s, %s, %s/%s)\n",
			buildinfo.Version, buildinfo.Commit, buildinfo.Date, buildinfo.GoVersion,
			buildinfo.OS(), buildinfo.Arch())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
