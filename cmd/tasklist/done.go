package main

import (
	"context"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between pending and completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := runner.ParseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.Toggle(ctx, app, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
