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

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "database:\n  dsn: \"host=localhost\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, DefaultGatewayURL, cfg.Push.GatewayURL)
	assert.Equal(t, DefaultPushTitle, cfg.Push.Title)
	assert.Equal(t, "default", cfg.Push.Sound)
	assert.Equal(t, 10*time.Second, cfg.Push.Timeout)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, "hotel:changes", cfg.Feed.Channel)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Push.WebPushEnabled())
}

func TestLoad_KeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  allowed_origins: ["https://admin.example.com"]
database:
  driver: sqlite
  dsn: "file:hotel.db"
push:
  title: "Aviso"
  timeout_seconds: 3
  vapid_public_key: pub
  vapid_private_key: priv
worker_pool:
  size: 4
feed:
  redis_addr: "localhost:6379"
  channel: "custom"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Aviso", cfg.Push.Title)
	assert.Equal(t, 3*time.Second, cfg.Push.Timeout)
	assert.True(t, cfg.Push.WebPushEnabled())
	assert.Equal(t, 4, cfg.WorkerPool.Size)
	assert.Equal(t, "localhost:6379", cfg.Feed.RedisAddr)
	assert.Equal(t, "custom", cfg.Feed.Channel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
