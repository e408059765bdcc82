package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/three-under/app"
	"github.com/Black-And-White-Club/three-under/config"
	"github.com/Black-And-White-Club/three-under/internal/observability"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.Init(config.ToObsConfig(cfg))
	logger := obs.Provider.Logger

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		logger.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Error during shutdown", "error", err)
		}
	}()

	if err := application.Run(ctx); err != nil {
		logger.Error("Application stopped with error", "error", err)
		cancel()
		_ = application.Close()
		os.Exit(1)
	}
	logger.Info("Application shut down gracefully")
}
