package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds runtime configuration for the catalog CLI.
type Config struct {
	Store    string `envconfig:"CATALOG_STORE" default:"file"`
	File     string `envconfig:"CATALOG_FILE" default:"products.json"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr string `envconfig:"CATALOG_REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisKey  string `envconfig:"CATALOG_REDIS_KEY" default:"catalog:products"`

	PGDSN    string `envconfig:"CATALOG_PG_DSN"`
	Document string `envconfig:"CATALOG_DOCUMENT" default:"products"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.File == "" {
			return fmt.Errorf("config: CATALOG_FILE must be set for the %s store", c.Store)
		}
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: CATALOG_REDIS_ADDR must be set for the %s store", c.Store)
		}
	case StorePostgres:
		if c.PGDSN == "" {
			return fmt.Errorf("config: CATALOG_PG_DSN must be set for the %s store", c.Store)
		}
	default:
		return fmt.Errorf("config: unknown CATALOG_STORE %q", c.Store)
	}
	return nil
}
