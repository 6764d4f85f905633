package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, 8181, cfg.Port)
		assert.Equal(t, "budgetly", cfg.Database.Name)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTtl)
		assert.Equal(t, 5, cfg.RateLimit.MaxAttempts)
		assert.False(t, cfg.Redis.Enabled)
	})

	t.Run("should override defaults from file and environment", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := "port: 9090\ndb:\n  host: db.internal\n  port: 6543\nredis:\n  enabled: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("BUDGETLY_DB_HOST", "db.from.env")
		t.Setenv("BUDGETLY_AUTH_SECRET", "s3cret")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "db.from.env", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "s3cret", cfg.Auth.Secret)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("should fail on malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestApplication_Location(t *testing.T) {
	assert.Equal(t, time.UTC, Application{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "Europe/Warsaw", Application{Timezone: "Europe/Warsaw"}.Location().String())
}
