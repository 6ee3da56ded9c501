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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
  env: development
database:
  driver: pgx
  url: postgres://localhost/advert
auth:
  jwt_secret: secret
  token_ttl: 2h
redis:
  addr: localhost:6379
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 290*time.Second, cfg.Redis.ListingTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: root@/advert
auth:
  jwt_secret: from-file
`)
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  jwt_secret: x\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("bad redis db", func(t *testing.T) {
		path := writeConfig(t, "database:\n  url: x\nauth:\n  jwt_secret: x\n")
		t.Setenv("REDIS_DB", "abc")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := writeConfig(t, "database:\n  driver: oracle\n  url: x\nauth:\n  jwt_secret: x\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		path := writeConfig(t, "database:\n  url: x\nauth:\n  jwt_secret: x\nstorage:\n  driver: s3\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}
