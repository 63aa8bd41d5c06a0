package main

import (
	"context"
	"log"
	"os"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/internal/cli"
	"github.com/aretw0/tasklist/pkg/adapters/mcp"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the configured list to AI agents as MCP tools (add_task, list_tasks,
toggle_task, delete_task, clear_completed, clear_all) and the tasklist://tasks resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		useSSE, _ := cmd.Flags().GetBool("sse")
		port, _ := cmd.Flags().GetInt("port")

		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			session, err := cli.OpenSession(ctx, app.Config, app.Store, app.Logger,
				tasklist.WithConfirmer(ports.AlwaysConfirm),
			)
			if err != nil {
				return err
			}
			srv := mcp.NewServer(session)

			if useSSE {
				app.Logger.Info("Starting tasklist MCP server (SSE)", "port", port)
				return srv.ServeSSE(ctx, port)
			}

			// Stdout carries JSON-RPC.
			log.SetOutput(os.Stderr)
			app.Logger.Info("Starting tasklist MCP server (stdio)")
			return srv.ServeStdio()
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8081, "Port for the SSE transport")
}
