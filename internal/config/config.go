package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mr1hm/go-quake-analyser/internal/models"
)

type Config struct {
	Dataset   DatasetConfig
	Sources   SourcesConfig
	DB        DatabaseConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
}

type DatasetConfig struct {
	Path      string
	AxisOrder models.AxisOrder
}

type SourcesConfig struct {
	USGSURL     string
	USGSTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type GeneratorConfig struct {
	Count  int
	Seed   uint64
	Output string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	axis, err := models.ParseAxisOrder(getEnv("AXIS_ORDER", "latlon"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dataset: DatasetConfig{
			Path:      getEnv("DATASET_PATH", "earthquakes.geojson"),
			AxisOrder: axis,
		},
		Sources: SourcesConfig{
			USGSURL:     getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_month.geojson"),
			USGSTimeout: getEnvDuration("USGS_TIMEOUT", 15*time.Second),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/quakes.db"),
		},
		Generator: GeneratorConfig{
			Count:  getEnvInt("GENERATOR_COUNT", 1000),
			Seed:   uint64(getEnvInt("GENERATOR_SEED", int(time.Now().UnixNano()))),
			Output: getEnv("GENERATOR_OUTPUT", "eq_output.geojson"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Sources.USGSTimeout <= 0 {
		return fmt.Errorf("USGS timeout must be positive")
	}
	if c.Generator.Count < 0 {
		return fmt.Errorf("generator count must not be negative: %d", c.Generator.Count)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
