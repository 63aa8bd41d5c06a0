package main

import (
	"fmt"

	"github.com/aretw0/tasklist"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tasklist",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tasklist version %s\n", tasklist.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
