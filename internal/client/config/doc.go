// Package config loads runtime configuration for the contacts CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config. Comments and trailing
//     commas are accepted (JSONC).
//  3. Environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the contacts API
//	-d string   path of the local SQLite database
//	-t int      per-request timeout (seconds)
//	-i int      session expiry check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	GOPHCONTACTS_API_URL    base URL of the contacts API
//	GOPHCONTACTS_DB         path of the local SQLite database
//	GOPHCONTACTS_LOG_LEVEL  log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "2s" or
// integer nanoseconds:
//
//	{
//	  // where the API lives
//	  "api_base_url": "https://contacts.example.com",
//	  "database_path": "contacts.db",
//	  "request_timeout": "10s",
//	  "notification_ttl": "2s",
//	  "expiry_buffer": "5m",
//	  "expiry_check_interval": "30s",
//	  "avatars": ["fox.jpg", "owl.jpg"],
//	  "log_level": "info"
//	}
package config
