package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/pcparts/catalog/internal/catalogservice"
)

func main() {
	if err := catalogservice.Run(); err != nil {
		log.Error().Err(err).Msg("catalog-service exited with error")
		os.Exit(1)
	}
}
