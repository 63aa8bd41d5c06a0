package main

import (
	"context"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Starts a shell that reads one command per line (add, done, rm, clear, search, ls).
Every change re-renders the list. With --json the shell writes JSON-Lines events for
editors and scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return cli.Shell(ctx, app, asJSON)
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().Bool("json", false, "Speak JSON-Lines instead of text")
}
