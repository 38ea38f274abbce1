package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stakescan/stake-scanner/cmd/stake-scanner/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}

	// loggers taken from a context without one fall back to the global logger
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Setup(ctx); err != nil {
		log.Err(err).Msg("stake-scanner exited with error")
		stop()
		os.Exit(1)
	}
}
