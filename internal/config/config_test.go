package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("BLOGQL_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnvDefault("BLOGQL_TEST_VALUE", "default"))

	t.Setenv("BLOGQL_TEST_VALUE", "")
	assert.Equal(t, "default", GetEnvDefault("BLOGQL_TEST_VALUE", "default"))
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "STORAGE", "SQLITE_DSN", "LOG_LEVEL", "LOG_FORMAT", "SEED"} {
			t.Setenv(key, "")
		}

		cfg := Load()
		assert.Equal(t, Config{
			Port:      "8080",
			Storage:   StorageMemory,
			SQLiteDSN: ":memory:",
			LogLevel:  "info",
			LogFormat: "text",
			Seed:      true,
		}, cfg)
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("STORAGE", StorageSQLite)
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("SEED", "false")

		cfg := Load()
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, StorageSQLite, cfg.Storage)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.False(t, cfg.Seed)
	})

	t.Run("Invalid SEED falls back to true", func(t *testing.T) {
		t.Setenv("SEED", "maybe")
		assert.True(t, Load().Seed)
	})
}
