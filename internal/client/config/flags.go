package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the contacts API
//	-d string   SQLite database path
//	-t int      request timeout in seconds
//	-i int      expiry check interval in seconds
//	-l string   log level
//
// Only these flags are looked at (see flagx.FilterArgs), so the -c config
// flag and anything else on the command line does not trip the parser.
// Malformed values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"a", "d", "t", "i", "l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the contacts API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.ExpiryCheckInterval.Seconds()), "expiry check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Second-granularity flags must not truncate sub-second values loaded
	// earlier, so they are applied only when given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.ExpiryCheckInterval = time.Duration(*interval) * time.Second
		}
	})
}
