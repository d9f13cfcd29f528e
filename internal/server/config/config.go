// Package config handles configuration for the vault server, layering
// defaults, an optional .env file, an optional JSON file, environment
// variables and command-line flags (last writer wins).
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the environment variables (VAULT_ENDPOINT_ADDR etc).
const envPrefix = "vault"

// Config holds runtime settings for the vault server.
//
// Fields:
//   - EndpointAddr: bind address for the transport-facing JSON endpoint.
//   - DatabaseDriver: "sqlite" (single-file, default) or "pgx" (PostgreSQL).
//   - DatabaseDSN: driver-specific DSN.
//   - PageSize: items per listing page.
//   - RateLimitWindow: minimum spacing between accepted messages per user.
//   - RateLimitCapacity: maximum users tracked by the rate limiter.
//   - SessionTTL: idle lifetime of per-user session state (save mode).
//   - RequirePhone: gate all commands on a completed contact exchange.
//   - DefaultFolderName: name given to the folder created on first contact.
type Config struct {
	EndpointAddr      string        `envconfig:"ENDPOINT_ADDR"`
	DatabaseDriver    string        `envconfig:"DATABASE_DRIVER"`
	DatabaseDSN       string        `envconfig:"DATABASE_DSN"`
	PageSize          int           `envconfig:"PAGE_SIZE"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW"`
	RateLimitCapacity int           `envconfig:"RATE_LIMIT_CAPACITY"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL"`
	RequirePhone      bool          `envconfig:"REQUIRE_PHONE"`
	DefaultFolderName string        `envconfig:"DEFAULT_FOLDER_NAME"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "vault.db"
	c.PageSize = 5
	c.RateLimitWindow = 200 * time.Millisecond
	c.RateLimitCapacity = 10000
	c.SessionTTL = 30 * time.Minute
	c.RequirePhone = true
	c.DefaultFolderName = "Personal"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional .env file, an optional JSON file, environment variables
// and finally command-line flags.
func LoadConfig() *Config {
	// make .env values visible to the envconfig overlay; a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays VAULT_-prefixed environment variables onto cfg.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
