package main

import (
	"context"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("search")
		asJSON, _ := cmd.Flags().GetBool("json")
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.List(ctx, app, term, asJSON)
		})
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringP("search", "s", "", "Only show tasks containing this text (case-insensitive)")
	lsCmd.Flags().Bool("json", false, "Print the list as JSON")
}
