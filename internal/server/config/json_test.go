package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr_http":      "www.example:9000",
			"endpoint_addr_grpc":      ":50052",
			"database_dsn":            "postgres://x",
			"secret_key":              "my_secret_key",
			"token_validity_duration": "12h",
			"password_hash_cost":      9,
			"hash_workers":            3,
			"store_timeout":           "2s",
			"default_todo_task":       "Say hi",
			"redis_addr":              "localhost:6379",
			"redis_password":          "pw",
			"redis_db":                1,
			"log_level":               "warn",
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, ":50052", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 9, cfg.PasswordHashCost)
		assert.Equal(t, 3, cfg.HashWorkers)
		assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
		assert.Equal(t, "Say hi", cfg.DefaultTodoTask)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, 1, cfg.RedisDB)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("no path → no changes", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, want, *cfg)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"secret_key": "only"})
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))
		assert.Equal(t, "only", cfg.SecretKey)
		assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(&Config{}, bad))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, filepath.Join(t.TempDir(), "nope.json")))
	})
}
