package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/internal/cli"
	httpAdapter "github.com/aretw0/tasklist/pkg/adapters/http"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the list over HTTP",
	Long: `Serves an HTML page and a JSON API for the configured list, plus /health and
/metrics. Browsers confirm deletions before calling the API.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			port := app.Config.Server.Port
			if cmd.Flags().Changed("port") {
				port, _ = cmd.Flags().GetInt("port")
			}

			srv := httpAdapter.NewServer()
			session, err := cli.OpenSession(ctx, app.Config, app.Store, app.Logger,
				tasklist.WithConfirmer(ports.AlwaysConfirm),
				tasklist.WithOnChange(srv.Publish),
			)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: srv.Handler(session),
			}

			serverErrors := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server listening", "address", httpServer.Addr, "list", app.Config.List)
				fmt.Fprintf(cmd.OutOrStdout(), "Serving list %q on http://localhost:%d\n", app.Config.List, port)
				serverErrors <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					httpServer.Close()
					return fmt.Errorf("graceful shutdown did not complete: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
				return nil
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default from config)")
}
