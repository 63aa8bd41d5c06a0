package main

import (
	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List the stored task lists",
	Long:  `Lists every list name in the configured store. The active list is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, cli.Slots)
	},
}

func init() {
	rootCmd.AddCommand(slotsCmd)
}
