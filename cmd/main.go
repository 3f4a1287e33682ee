package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"valuation_service/internal/application"
	"valuation_service/internal/config"
	"valuation_service/pkg/contextx"
	"valuation_service/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := slog.New(logx.NewHandler(os.Stdout, cfg.Log.Format, cfg.Log.Level))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err = application.Run(ctx, cfg); err != nil {
		log.Error("application.Run", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
