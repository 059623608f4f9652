package main

import (
	"context"
	"os"
	"os/signal"
	clts "polydash/clients"
	"polydash/config"
	"polydash/internal/app"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load config from environment variables
	cfg := config.Load()
	if result := cfg.Validate(); !result.Valid {
		for _, ve := range result.Errors {
			logger.Error("invalid configuration",
				zap.String("field", ve.Field),
				zap.String("message", ve.Message),
			)
		}
		logger.Fatal("configuration validation failed")
	}

	logger.Info("starting polydash", zap.Bool("isProd", cfg.IsProd))

	logger.Info("instantiating clients")
	clients := clts.NewClients(logger, cfg)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	runner := app.NewRunner(clients, cfg)
	if err := runner.Run(ctx); err != nil {
		logger.Fatal("runner failed", zap.Error(err))
	}
}
