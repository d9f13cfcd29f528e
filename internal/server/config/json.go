package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/chatvault/internal/flagx"
	"github.com/dmitrijs2005/chatvault/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Interval fields
// use timex.Duration so configs can say "200ms" instead of raw nanoseconds.
// Pointer fields distinguish "absent" from zero values when overlaying.
type JsonConfig struct {
	EndpointAddr      *string         `json:"endpoint_addr"`
	DatabaseDriver    *string         `json:"database_driver"`
	DatabaseDSN       *string         `json:"database_dsn"`
	PageSize          *int            `json:"page_size"`
	RateLimitWindow   *timex.Duration `json:"rate_limit_window"`
	RateLimitCapacity *int            `json:"rate_limit_capacity"`
	SessionTTL        *timex.Duration `json:"session_ttl"`
	RequirePhone      *bool           `json:"require_phone"`
	DefaultFolderName *string         `json:"default_folder_name"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// An unreadable or invalid file panics: a config the operator pointed at
// explicitly must not be half-applied.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	applyJson(config, file)
}

func applyJson(config *Config, data []byte) {
	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDriver != nil {
		config.DatabaseDriver = *c.DatabaseDriver
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.PageSize != nil {
		config.PageSize = *c.PageSize
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = time.Duration(c.RateLimitWindow.Duration)
	}
	if c.RateLimitCapacity != nil {
		config.RateLimitCapacity = *c.RateLimitCapacity
	}
	if c.SessionTTL != nil {
		config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	}
	if c.RequirePhone != nil {
		config.RequirePhone = *c.RequirePhone
	}
	if c.DefaultFolderName != nil {
		config.DefaultFolderName = *c.DefaultFolderName
	}
}
