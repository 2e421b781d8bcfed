package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/logging"
	"github.com/vidyasagar/fsurf/internal/server"
)

func newServeCmd() *cobra.Command {
	cfg := server.DefaultConfig()
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve this machine's filesystem to fsurf clients",
		Long: `serve exposes the local drives and folders over a read-only JSON API:

  GET /api/device           hostname, platform and drives
  GET /api/items?path=DIR   folders and files in DIR
  GET /healthz              liveness
  GET /metrics              Prometheus metrics

On Windows hosts /api/items?path=/ also answers with the device listing,
as older clients expect. Elsewhere "/" is the filesystem root folder and
the device listing lives only at /api/device.

The address defaults to $FSURF_HTTP, then ` + server.DefaultAddr + `.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return report(err)
			}
			log := logging.NewConsole(os.Stderr, level)

			if !cmd.Flags().Changed("addr") {
				if env := os.Getenv("FSURF_HTTP"); env != "" {
					cfg.Addr = env
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.New(cfg, explorer.New(), log).ListenAndServe(ctx); err != nil {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "per-request timeout")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
	return cmd
}
