package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tasklist/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "tasklist is a small persistent to-do list",
	Long: `tasklist keeps ordered to-do lists in a file, SQLite, Redis or memory.
Use the one-shot commands from scripts, the shell for interactive work, or serve the
list over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: ~/.tasklist/config.yaml then .tasklist/config.yaml)")
	pf.StringP("list", "l", "", "Name of the list (slot) to use")
	pf.String("backend", "", "Storage backend: file, memory, redis or sqlite")
	pf.Bool("debug", false, "Enable debug logging on stderr")
}

func optionsFrom(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	list, _ := flags.GetString("list")
	backend, _ := flags.GetString("backend")
	debug, _ := flags.GetBool("debug")
	return cli.Options{
		ConfigPath: configPath,
		List:       list,
		Backend:    backend,
		Debug:      debug,
	}
}

// withApp builds the app for cmd, cancels it on SIGINT/SIGTERM and closes the store
// when fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, optionsFrom(cmd), os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}
