package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"ProductCatalog/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CATALOG_STORE", "CATALOG_FILE", "LOG_LEVEL", "CATALOG_PG_DSN"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.StoreFile, cfg.Store)
	require.Equal(t, "products.json", cfg.File)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "catalog:products", cfg.RedisKey)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CATALOG_STORE", "redis")
	t.Setenv("CATALOG_REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.StoreRedis, cfg.Store)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("CATALOG_STORE", "sqlite")

	_, err := config.Load()
	require.ErrorContains(t, err, "unknown CATALOG_STORE")
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("CATALOG_STORE", "postgres")
	t.Setenv("CATALOG_PG_DSN", "")

	_, err := config.Load()
	require.ErrorContains(t, err, "CATALOG_PG_DSN")
}
