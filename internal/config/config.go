package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/spf13/viper"
)

// Default values for configuration keys.
const (
	DefaultBaseURL           = "https://api.frankfurter.dev/v1"
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 4
	DefaultRetryAttempts     = 2
	DefaultDatabasePath      = "$HOME/.local/share/fxdash/fxdash.db"
	DefaultLogFile           = "$HOME/.local/state/fxdash/fxdash.log"
)

// Config is the typed application configuration.
type Config struct {
	Logging  LoggingConfig
	API      APIConfig
	Database DatabaseConfig
}

// APIConfig configures the rate service client.
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	RetryAttempts     int
}

// DatabaseConfig configures preference storage.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string
	Format string
	// File receives logs while the dashboard owns the terminal.
	File string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("api.burst", DefaultBurst)
	v.SetDefault("api.retry_attempts", DefaultRetryAttempts)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load reads the configuration from v, expands paths and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := &Config{
		API: APIConfig{
			BaseURL:           v.GetString("api.base_url"),
			Timeout:           v.GetDuration("api.timeout"),
			RequestsPerSecond: v.GetFloat64("api.requests_per_second"),
			Burst:             v.GetInt("api.burst"),
			RetryAttempts:     v.GetInt("api.retry_attempts"),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second cannot be negative", common.ErrInvalidConfig)
	}
	if c.API.Burst < 0 {
		return fmt.Errorf("%w: api.burst cannot be negative", common.ErrInvalidConfig)
	}
	if c.API.RetryAttempts < 1 {
		return fmt.Errorf("%w: api.retry_attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
