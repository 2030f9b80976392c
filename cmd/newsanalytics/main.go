package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"NewsAnalytics/internal/app"
	"NewsAnalytics/internal/config"
	"NewsAnalytics/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	var err error
	if cfg.Scheduler.Enabled {
		logger.Info("running on a schedule", "interval", cfg.Scheduler.Period())
		err = application.RunRecurring(ctx)
	} else {
		err = application.Run(ctx)
	}
	if err != nil {
		logger.Error("pipeline stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
