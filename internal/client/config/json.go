package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophcontacts/internal/flagx"
	"github.com/dmitrijs2005/gophcontacts/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-able fields let a file override only the settings it mentions.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	DatabasePath        string          `json:"database_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	NotificationTTL     *timex.Duration `json:"notification_ttl"`
	ExpiryBuffer        *timex.Duration `json:"expiry_buffer"`
	ExpiryCheckInterval *timex.Duration `json:"expiry_check_interval"`
	Avatars             []string        `json:"avatars"`
	LogLevel            string          `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without such a flag nothing happens. Read or decode errors panic; main
// treats them as fatal.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.NotificationTTL != nil {
		cfg.NotificationTTL = jc.NotificationTTL.Duration
	}
	if jc.ExpiryBuffer != nil {
		cfg.ExpiryBuffer = jc.ExpiryBuffer.Duration
	}
	if jc.ExpiryCheckInterval != nil {
		cfg.ExpiryCheckInterval = jc.ExpiryCheckInterval.Duration
	}
	if len(jc.Avatars) > 0 {
		cfg.Avatars = jc.Avatars
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
