package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./data/aliases.db", cfg.Storage.Path)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, 1000, cfg.App.MaxQuantity)
	assert.Equal(t, "https://eu.i.posthog.com", cfg.Analytics.PostHogHost)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RATE", "2.5")
	t.Setenv("SERVER_READ_TIMEOUT", "bogus")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "production", cfg.Log.Environment)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Storage.Redis.DB)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.Rate)
	// unparsable durations fall back to the default
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTHOG_KEY=phc_test\nSTORAGE_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("POSTHOG_KEY")
		os.Unsetenv("STORAGE_DRIVER")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "phc_test", cfg.Analytics.PostHogKey)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Storage:   StorageConfig{Driver: "sqlite", Path: "x.db"},
			App:       AppConfig{Environment: "staging", MaxQuantity: 10},
			RateLimit: RateLimitConfig{Enabled: true, Rate: 1, Burst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = "70000" }, true},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, true},
		{"empty sqlite path", func(c *Config) { c.Storage.Path = "" }, true},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = "postgres" }, true},
		{"postgres with dsn", func(c *Config) { c.Storage.Driver = "postgres"; c.Storage.DSN = "postgres://x" }, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, true},
		{"unknown environment", func(c *Config) { c.App.Environment = "qa" }, true},
		{"zero max quantity", func(c *Config) { c.App.MaxQuantity = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"zero rate", func(c *Config) { c.RateLimit.Rate = 0 }, true},
		{"zero rate but disabled", func(c *Config) { c.RateLimit.Rate = 0; c.RateLimit.Enabled = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			c.Log.Level = "info"
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
