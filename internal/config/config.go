package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the catalog service.
// Environment variables are parsed from the CATALOG_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver: auto, postgres, sqlite
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/catalog.db"`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"30"`

	// Paging
	DefaultPageLimit int `envconfig:"DEFAULT_PAGE_LIMIT" default:"20"`
	MaxPageLimit     int `envconfig:"MAX_PAGE_LIMIT" default:"100"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("CATALOG_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("CATALOG_SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DefaultPageLimit <= 0 || c.MaxPageLimit <= 0 {
		return fmt.Errorf("page limits must be positive")
	}
	if c.DefaultPageLimit > c.MaxPageLimit {
		return fmt.Errorf("DEFAULT_PAGE_LIMIT %d exceeds MAX_PAGE_LIMIT %d", c.DefaultPageLimit, c.MaxPageLimit)
	}
	return nil
}

// New creates a Config from CATALOG_* environment variables.
// Example: CATALOG_HTTP_PORT, CATALOG_POSTGRES_DSN
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CATALOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Int("default_page_limit", cfg.DefaultPageLimit).
		Int("max_page_limit", cfg.MaxPageLimit).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns a resolved local config.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		DBDriver:                  "sqlite",
		HTTPPort:                  8080,
		LogLevel:                  "debug",
		SQLitePath:                ":memory:",
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
		BootstrapTimeoutSeconds:   5,
		DefaultPageLimit:          20,
		MaxPageLimit:              100,
	}
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
