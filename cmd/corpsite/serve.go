package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/corpsite/pkg/clientip"
	"github.com/dmitrymomot/corpsite/pkg/config"
	"github.com/dmitrymomot/corpsite/pkg/environment"
	"github.com/dmitrymomot/corpsite/pkg/httpserver"
	"github.com/dmitrymomot/corpsite/pkg/logger"
	"github.com/dmitrymomot/corpsite/pkg/requestid"
)

func serveCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := config.LoadEnv(envFile); err != nil {
					return err
				}
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(
				logger.WithEnvironment(cfg.Env, cfg.Name),
				logger.WithContextExtractors(
					requestid.LogExtractor(),
					clientip.LogExtractor(),
					environment.LogExtractor(),
				),
			)
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				log.ErrorContext(ctx, "failed to start", logger.Error(err))
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.WarnContext(context.WithoutCancel(ctx), "failed to release resources", logger.Error(err))
				}
			}()

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
			return srv.Run(ctx, a.handler)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "load variables from this .env file first")
	return cmd
}
