package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"letsgo/internal/passenger/bootstrap"
	"letsgo/internal/shared/config"
	"letsgo/internal/shared/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLoggerWithOptions("letsgo", cfg.Log.Level, cfg.Log.Dir, cfg.Log.Pretty)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	bootstrap.Run(ctx, cfg, log)
}
