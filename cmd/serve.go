package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stays/internal/api"
	"stays/internal/api/handler/v1handler"
	"stays/internal/config"
	"stays/internal/directory"
	"stays/pkg/credential"
	"stays/pkg/logger"
)

func setupServer(ctx context.Context, cfg *config.Config, d directory.Directory) func(ctx context.Context) {
	tokens, err := v1handler.NewTokenIssuer(v1handler.NewTokenIssuerOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create token issuer", zap.Error(err))
	}

	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Directory: d,
			Tokens:    tokens,
		},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			d := directory.New(strg,
				credential.BcryptHasher{Cost: cfg.Directory.BcryptCost},
				directory.NewOptions(cfg))

			stopWebserver := setupServer(ctx, cfg, d)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
