package main

import (
	"context"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task, or only completed ones",
	Long: `Deletes every task after asking for confirmation. Without a terminal, --yes is
required. With --completed only completed tasks are removed and no confirmation is asked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		completed, _ := cmd.Flags().GetBool("completed")
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.Clear(ctx, app, completed, yes)
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("completed", "c", false, "Only delete completed tasks")
	clearCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}
