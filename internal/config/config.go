package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/chofshli/internal/holiday"
)

// Config represents application configuration
type Config struct {
	Category    string            `mapstructure:"category"` // used when no preference is stored
	Calendar    CalendarConfig    `mapstructure:"calendar"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Log         LogConfig         `mapstructure:"log"`
	Server      ServerConfig      `mapstructure:"server"`
}

// CalendarConfig represents holiday source configuration
type CalendarConfig struct {
	Source       string `mapstructure:"source"`        // "hebcal", "file" or "composite"
	Locale       string `mapstructure:"locale"`        // display name locale for hebcal
	FallbackFile string `mapstructure:"fallback_file"` // holiday file for "file" and "composite"
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// PreferencesConfig represents preference storage configuration
type PreferencesConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "sqlite"
	Path    string `mapstructure:"path"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("category", string(holiday.CategoryCitizen))
	v.SetDefault("calendar.source", "hebcal")
	v.SetDefault("calendar.locale", "he")
	v.SetDefault("calendar.fallback_file", "")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("preferences.backend", "file")
	v.SetDefault("preferences.path", defaultPreferencesPath())
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
}

func defaultPreferencesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "preferences.json"
	}
	return filepath.Join(home, ".chofshli", "preferences.json")
}

// Load loads configuration from file. A missing file is not an error:
// defaults and environment variables (CHOFSHLI_*) still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.chofshli")
	}

	// Read environment variables
	v.SetEnvPrefix("chofshli")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Category != "" && !holiday.Category(c.Category).Valid() {
		return fmt.Errorf("category must be one of citizen, soldier, kevah, got '%s'", c.Category)
	}

	switch c.Calendar.Source {
	case "", "hebcal":
	case "file", "composite":
		if c.Calendar.FallbackFile == "" {
			return fmt.Errorf("calendar.fallback_file is required for %s source", c.Calendar.Source)
		}
	default:
		return fmt.Errorf("calendar.source must be 'hebcal', 'file' or 'composite', got '%s'", c.Calendar.Source)
	}

	switch c.Preferences.Backend {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("preferences.backend must be 'file' or 'sqlite', got '%s'", c.Preferences.Backend)
	}
	if c.Preferences.Path == "" {
		return fmt.Errorf("preferences.path is required")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	return nil
}

// DefaultCategory returns the configured fallback category
func (c *Config) DefaultCategory() holiday.Category {
	return holiday.ParseCategory(c.Category)
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.FallbackFile = os.ExpandEnv(c.Calendar.FallbackFile)
	c.Preferences.Path = os.ExpandEnv(c.Preferences.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
