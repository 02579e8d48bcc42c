package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hrm/internal/app"
	"go-hrm/internal/config"
	applogger "go-hrm/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("HRM_CONFIG"))
	if err != nil {
		panic(err)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
