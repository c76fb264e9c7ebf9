package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultsWithoutConfigFile", func(t *testing.T) {
		// An empty directory: no config file, no env overrides.
		cfg, err := LoadConfig(t.TempDir())

		assert.NoError(t, err)
		assert.Equal(t, "YOUR_ALPACA_KEY", cfg.Alpaca.ApiKey)
		assert.Equal(t, "YOUR_ALPACA_SECRET", cfg.Alpaca.SecretKey)
		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logger.Level)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("ALPACA_API_KEY", "env-key")
		t.Setenv("ALPACA_SECRET_KEY", "env-secret")
		t.Setenv("SERVER_PORT", "8080")

		cfg, err := LoadConfig(t.TempDir())

		assert.NoError(t, err)
		assert.Equal(t, "env-key", cfg.Alpaca.ApiKey)
		assert.Equal(t, "env-secret", cfg.Alpaca.SecretKey)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("alpaca:\n  api_key: \"file-key\"\nserver:\n  port: 9000\n")
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)

		assert.NoError(t, err)
		assert.Equal(t, "file-key", cfg.Alpaca.ApiKey)
		assert.Equal(t, 9000, cfg.Server.Port)
		// untouched keys keep their defaults
		assert.Equal(t, "YOUR_ALPACA_SECRET", cfg.Alpaca.SecretKey)
	})
}
