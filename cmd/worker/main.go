package main

import (
	"context"
	"os"
	"os/signal"
	"rentopia/config"
	"rentopia/di"
	"rentopia/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, notifications are dispatched in-process by the app")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeWorker()

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Notification worker started")

	consumer.Run(ctx)

	log.Info().Msg("Notification worker stopped")
}
