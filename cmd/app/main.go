package main

import (
	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/di"
	"yujin/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	app.Serve()
}
