package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the remaining fields carry their defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 3, conf.Board.Dimension)
		assert.Equal(t, 32, conf.Render.SpriteWidth)
		assert.Equal(t, 2, conf.Render.LineThickness)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, 24*time.Hour, conf.Redis.TTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an environment variable for the same key
		path := writeConfig(t, "redis:\n  host: cache\n  port: \"6380\"\n")
		t.Setenv("REDIS_HOST", "redis.internal")

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the environment wins
		assert.Equal(t, "redis.internal:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Non positive dimension is rejected", func(t *testing.T) {
		path := writeConfig(t, "board:\n  dimension: -1\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}
