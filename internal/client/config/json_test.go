package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("loads JSONC with comments", func(t *testing.T) {
		path := writeTempFile(t, "cfg.jsonc", `{
			// API endpoint
			"api_base_url": "https://contacts.example.com",
			"request_timeout": "3s",
			"notification_ttl": 1000000000,
			"expiry_buffer": "1m",
			"avatars": ["fox.jpg"],
		}`)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "https://contacts.example.com", cfg.APIBaseURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Second, cfg.NotificationTTL)
		assert.Equal(t, time.Minute, cfg.ExpiryBuffer)
		assert.Equal(t, 30*time.Second, cfg.ExpiryCheckInterval, "unmentioned keys keep defaults")
		assert.Equal(t, []string{"fox.jpg"}, cfg.Avatars)
		assert.Equal(t, "contacts.db", cfg.DatabasePath)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "http://defaults"}
		parseJson(cfg, []string{"-a", "http://other"})
		assert.Equal(t, "http://defaults", cfg.APIBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{ this is not valid json`)
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", path}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
	})
}
