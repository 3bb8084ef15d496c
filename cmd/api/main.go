package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nitishagar/bharatdcim/internal/api"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/logging"
)

func main() {
	// Get configuration from environment
	settings := config.FromEnv()
	log := logging.New(settings.Env, settings.LogLevel)

	if wd, err := os.Getwd(); err == nil {
		log.Debug().Str("working_dir", wd).Str("scenario_dir", settings.ScenarioDir).Msg("paths")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, settings, log); err != nil {
		log.Fatal().Err(err).Msg("API server failed")
	}
}
