package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/kamilvitek/frix/internal/config"
	"github.com/kamilvitek/frix/internal/handlers"
	"github.com/kamilvitek/frix/internal/server"
	"github.com/kamilvitek/frix/internal/telemetry"
	"github.com/kamilvitek/frix/pkg/logger"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the HTTP server for the landing page.

Configuration comes from the environment (WEBSITE_PORT, SERVER_ADDRESS,
RATE_LIMIT_RPS, ...). --port overrides WEBSITE_PORT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(newApp(port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides WEBSITE_PORT)")

	return cmd
}

func newApp(port int, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		logger.Module,
		config.Module,
		telemetry.Module,
		server.Module,
		handlers.Module,
	}

	if port != 0 {
		opts = append(opts, fx.Decorate(func(cfg *config.Config) (*config.Config, error) {
			cfg.ServerPort = port
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid --port: %w", err)
			}
			return cfg, nil
		}))
	}

	return fx.New(append(opts, extra...)...)
}

// runServe starts app, blocks until SIGINT or SIGTERM and stops it.
func runServe(app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	<-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop server: %w", err)
	}
	return nil
}
