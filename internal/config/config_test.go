package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/chofshli/internal/holiday"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, holiday.CategoryCitizen, cfg.DefaultCategory())
	assert.Equal(t, "hebcal", cfg.Calendar.Source)
	assert.Equal(t, "he", cfg.Calendar.Locale)
	assert.Equal(t, "file", cfg.Preferences.Backend)
	assert.NotEmpty(t, cfg.Preferences.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Calendar.GetCacheTTL())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
category: kevah
calendar:
  source: composite
  fallback_file: holidays.txt
  cache_ttl: 1h
preferences:
  backend: sqlite
  path: /tmp/chofshli.db
log:
  level: debug
server:
  addr: 127.0.0.1:9090
  shutdown_timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, holiday.CategoryCareerSoldier, cfg.DefaultCategory())
	assert.Equal(t, "composite", cfg.Calendar.Source)
	assert.Equal(t, "holidays.txt", cfg.Calendar.FallbackFile)
	assert.Equal(t, time.Hour, cfg.Calendar.GetCacheTTL())
	assert.Equal(t, "sqlite", cfg.Preferences.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Server.GetShutdownTimeout())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHOFSHLI_CATEGORY", "soldier")
	t.Setenv("CHOFSHLI_SERVER_ADDR", ":7070")

	cfg, err := Load(writeConfig(t, "category: citizen\n"))
	require.NoError(t, err)

	assert.Equal(t, holiday.CategorySoldier, cfg.DefaultCategory())
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Category:    "citizen",
			Calendar:    CalendarConfig{Source: "hebcal"},
			Preferences: PreferencesConfig{Backend: "file", Path: "prefs.json"},
			Server:      ServerConfig{Addr: ":8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad category", func(c *Config) { c.Category = "admiral" }, true},
		{"bad source", func(c *Config) { c.Calendar.Source = "google" }, true},
		{"file source without file", func(c *Config) { c.Calendar.Source = "file" }, true},
		{"composite with file", func(c *Config) {
			c.Calendar.Source = "composite"
			c.Calendar.FallbackFile = "h.txt"
		}, false},
		{"bad backend", func(c *Config) { c.Preferences.Backend = "redis" }, true},
		{"missing path", func(c *Config) { c.Preferences.Path = "" }, true},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetCacheTTL_Invalid(t *testing.T) {
	c := CalendarConfig{CacheTTL: "forever"}
	assert.Equal(t, 24*time.Hour, c.GetCacheTTL())
}
