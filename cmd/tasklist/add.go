package main

import (
	"context"
	"strings"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.Add(ctx, app, strings.Join(args, " "))
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
