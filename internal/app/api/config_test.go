package api

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("PORT", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 14*24*time.Hour, cfg.CartTTL())
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 256, cfg.UPI.QRSize)
	assert.False(t, cfg.Temporal.Disabled)
}

func TestLoadConfigFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
log_level: debug
redis:
  addr: redis:6379
  db: 2
upi:
  id: grocer@okbank
  payee_name: Corner Grocer
sessions:
  cart_ttl_hours: 48
`), 0o600))
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "")
	t.Setenv("UPI_PAYEE_NAME", "Night Market")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "grocer@okbank", cfg.UPI.ID)
	assert.Equal(t, "Night Market", cfg.UPI.PayeeName)
	assert.Equal(t, 48*time.Hour, cfg.CartTTL())
	assert.True(t, cfg.Temporal.Disabled)
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	t.Setenv("PORT", "not-a-port")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL_HOURS", "0")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("LOG_LEVEL", "chatty")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
}
