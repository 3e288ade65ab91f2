package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"rentopia/config"
	"rentopia/helper"
	"rentopia/shared/logger"
)

const usage = "usage: migrate up|down|step-up|drop|force <version>"

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 { //nolint:mnd
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()
	action := os.Args[1]

	if action == "force" {
		if len(os.Args) < 3 { //nolint:mnd
			log.Fatal().Msg(usage)
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("version", os.Args[2]).Msg("Version must be a number")
		}

		if err = helper.Force(cfg, version); err != nil {
			log.Fatal().Err(err).Msg("Migration force failed")
		}

		return
	}

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg(usage)
	}
}
