package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/climate-server/internal/api"
	"github.com/skybi/climate-server/internal/climate"
	"github.com/skybi/climate-server/internal/config"
	"github.com/skybi/climate-server/internal/feed"
	"github.com/skybi/climate-server/internal/observation"
	"github.com/skybi/climate-server/internal/station"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Create the feed client and the lazily built station index & name directory
	feeds := feed.NewClient(cfg.InventoryURL, cfg.StationsURL, cfg.ObservationsURL, cfg.FeedTimeout)
	index := station.NewIndex(feeds)
	directory := station.NewDirectory(feeds)

	// Create the aggregation cache on top of the observation ingest service
	ingest := observation.NewService(feeds)
	climateCache, err := climate.NewCache(ingest, cfg.ClimateCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the aggregation cache")
	}

	// Start up the climate API
	log.Info().Str("address", cfg.APIListenAddress).Msg("starting up the climate API...")
	apiService := &api.Service{
		Config:    cfg,
		Index:     index,
		Directory: directory,
		Climate:   climateCache,
	}
	apiErrs := make(chan error, 1)
	apiService.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the climate API...")
		apiService.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
