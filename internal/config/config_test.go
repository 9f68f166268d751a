package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.InDelta(t, 5.0, cfg.API.RequestsPerSecond, 1e-9)
	assert.Equal(t, 4, cfg.API.Burst)
	assert.Equal(t, 2, cfg.API.RetryAttempts)
	assert.Equal(t, "/home/tester/.local/share/fxdash/fxdash.db", cfg.Database.Path)
	assert.Equal(t, "/home/tester/.local/state/fxdash/fxdash.log", cfg.Logging.File)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
api:
  base_url: http://localhost:8080/v1
  timeout: 3s
  burst: 1
database:
  path: ~/fx.db
`), 0o600))

	t.Setenv("FXDASH_API_RETRY_ATTEMPTS", "5")

	v := viper.New()
	v.SetConfigFile(file)
	v.SetEnvPrefix("FXDASH")
	v.SetEnvKeyReplacer(EnvKeyReplacer())
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "http://localhost:8080/v1", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Burst)
	assert.Equal(t, 5, cfg.API.RetryAttempts)
	assert.Equal(t, filepath.Join(home, "fx.db"), cfg.Database.Path)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL:       DefaultBaseURL,
				Timeout:       time.Second,
				RetryAttempts: 1,
			},
			Database: DatabaseConfig{Path: "/tmp/fx.db"},
			Logging:  LoggingConfig{Level: "debug", Format: "json"},
		}
	}

	tests := []struct {
		mutate  func(*Config)
		wantErr error
		name    string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: common.ErrMissingConfig},
		{name: "relative url", mutate: func(c *Config) { c.API.BaseURL = "frankfurter" }, wantErr: common.ErrInvalidConfig},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: common.ErrInvalidConfig},
		{name: "negative rps", mutate: func(c *Config) { c.API.RequestsPerSecond = -1 }, wantErr: common.ErrInvalidConfig},
		{name: "negative burst", mutate: func(c *Config) { c.API.Burst = -1 }, wantErr: common.ErrInvalidConfig},
		{name: "no attempts", mutate: func(c *Config) { c.API.RetryAttempts = 0 }, wantErr: common.ErrInvalidConfig},
		{name: "missing db", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: common.ErrMissingConfig},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: common.ErrInvalidConfig},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("FXDASH_TEST_DIR", "/data")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandPath("~/a/b"))
	assert.Equal(t, "/data/fx.db", ExpandPath("$FXDASH_TEST_DIR/fx.db"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
