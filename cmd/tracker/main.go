package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pump-radar/internal/tracker"
	"pump-radar/internal/tracker/config"
	"pump-radar/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	logger.InitTrace("pump-radar", "tracker")
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	rootLogger := logger.NewLogger("tracker")
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)

	// config hot reload: filter and log-level changes apply without restart
	go config.WatchConfig(&cfg)

	core := tracker.New(cfg, tl)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		tl.Info("Starting pump-radar tracker...")
		core.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	tl.Info("Received shutdown signal, starting graceful shutdown...")

	core.Stop(ctx)

	tl.Info("Shutting down all cores...")
}
