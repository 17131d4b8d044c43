package config

const (
	EnvAPIURL   = "GOPHCONTACTS_API_URL"
	EnvDatabase = "GOPHCONTACTS_DB"
	EnvLogLevel = "GOPHCONTACTS_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
