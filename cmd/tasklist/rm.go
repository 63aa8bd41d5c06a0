package main

import (
	"context"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long:    `Deletes a task after asking for confirmation. Without a terminal, --yes is required.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := runner.ParseID(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.Remove(ctx, app, id, yes)
		})
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}
