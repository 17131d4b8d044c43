package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the contacts CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the contacts REST API.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - RequestTimeout: deadline applied to every API call.
//   - NotificationTTL: how long a success notification stays visible.
//   - ExpiryBuffer: remaining token lifetime below which the session is
//     considered about to expire.
//   - ExpiryCheckInterval: how often the CLI re-checks token expiry.
//   - Avatars: avatar references an identity can be given.
//   - LogLevel: minimum level written to stderr.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	RequestTimeout      time.Duration
	NotificationTTL     time.Duration
	ExpiryBuffer        time.Duration
	ExpiryCheckInterval time.Duration
	Avatars             []string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000"
	c.DatabasePath = "contacts.db"
	c.RequestTimeout = 10 * time.Second
	c.NotificationTTL = 2 * time.Second
	c.ExpiryBuffer = 300 * time.Second
	c.ExpiryCheckInterval = 30 * time.Second
	c.Avatars = []string{"avatar-1.jpg", "avatar-2.jpg", "avatar-3.jpg", "avatar-4.jpg"}
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, args)
	return cfg
}
