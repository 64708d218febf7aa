package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/qszone/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		Long: `Start the qszone server.

Endpoints:
  GET /href      one-shot computation
  GET /zones     configured zones
  GET /ws        live session
  GET /metrics   Prometheus metrics
  GET /healthz   liveness

The configuration can be a local JSON or YAML file, or an object in S3
(s3://bucket/key) read with the default AWS credential chain.

Examples:
  qszone serve
  qszone serve --config qszone.yaml --addr :9090
  qszone serve --config s3://my-bucket/qszone.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			srv := server.New(cfg, server.WithLogger(slog.Default()))

			out := cmd.OutOrStdout()
			success(out, "Listening on %s", cfg.Server.Addr)
			if p := cfg.Path(); p != "" {
				info(out, "Config: %s", p)
			}
			info(out, "Zones:  %d", len(srv.Zones().Names()))

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file or s3://bucket/key")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
