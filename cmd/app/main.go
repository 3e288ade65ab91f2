package main

import (
	"rentopia/config"
	"rentopia/di"
	"rentopia/helper"
	"rentopia/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Rentopia API
// @version 1.0
// @description Rental marketplace: listings, bookings, payments, reviews and host subscriptions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
