package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BROWNSTREET_APP_NAME":           os.Getenv("BROWNSTREET_APP_NAME"),
		"BROWNSTREET_APP_ENV":            os.Getenv("BROWNSTREET_APP_ENV"),
		"BROWNSTREET_APP_PORT":           os.Getenv("BROWNSTREET_APP_PORT"),
		"BROWNSTREET_DATABASE_HOST":      os.Getenv("BROWNSTREET_DATABASE_HOST"),
		"BROWNSTREET_DATABASE_PASSWORD":  os.Getenv("BROWNSTREET_DATABASE_PASSWORD"),
		"BROWNSTREET_DATABASE_SSLMODE":   os.Getenv("BROWNSTREET_DATABASE_SSLMODE"),
		"BROWNSTREET_COMMERCE_CLIENT_ID": os.Getenv("BROWNSTREET_COMMERCE_CLIENT_ID"),
		"BROWNSTREET_SYNC_BATCH_SIZE":    os.Getenv("BROWNSTREET_SYNC_BATCH_SIZE"),
		"BROWNSTREET_JWT_SECRET":         os.Getenv("BROWNSTREET_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "brownstreet-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "brownstreet", cfg.Database.DBName)
		assert.Equal(t, 5, cfg.Sync.BatchSize)
		assert.Equal(t, 200*time.Millisecond, cfg.Sync.BatchDelay)
		assert.Equal(t, 30, cfg.Lifecycle.NewDays)
		assert.Equal(t, 60, cfg.Lifecycle.CuratedDays)
		assert.Equal(t, 150, cfg.Lifecycle.ArchiveDays)
		assert.Equal(t, 30, cfg.Commerce.TimeoutSeconds)
	})

	t.Run("loads values from environment variables with BROWNSTREET prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BROWNSTREET_APP_NAME", "test-app")
		os.Setenv("BROWNSTREET_DATABASE_HOST", "testdb.local")
		os.Setenv("BROWNSTREET_COMMERCE_CLIENT_ID", "client-env")
		os.Setenv("BROWNSTREET_SYNC_BATCH_SIZE", "3")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "client-env", cfg.Commerce.ClientID)
		assert.Equal(t, 3, cfg.Sync.BatchSize)
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("BROWNSTREET_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production requires commerce credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("BROWNSTREET_APP_ENV", "production")
		os.Setenv("BROWNSTREET_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("BROWNSTREET_DATABASE_PASSWORD", "secret")
		os.Setenv("BROWNSTREET_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "commerce.client_id")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "brownstreet",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
