package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment      string        `split_words:"true" default:"dev"`
	APIListenAddress string        `split_words:"true" default:":8090"`
	InventoryURL     string        `split_words:"true" default:"https://www1.ncdc.noaa.gov/pub/data/ghcn/daily/ghcnd-inventory.txt"`
	StationsURL      string        `split_words:"true" default:"https://www1.ncdc.noaa.gov/pub/data/ghcn/daily/ghcnd-stations.txt"`
	ObservationsURL  string        `split_words:"true" default:"https://www1.ncdc.noaa.gov/pub/data/ghcn/daily/by_station"`
	FeedTimeout      time.Duration `split_words:"true" default:"30s"`
	ClimateCacheSize int           `split_words:"true" default:"256"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "prod" || config.Environment == "production"
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("cl", config); err != nil {
		return nil, err
	}
	return config, nil
}
