package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 4000
store:
  driver: memory
email:
  send_timeout: 3s
auth:
  bcrypt_cost: 6
`), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "5050")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Email.SendTimeout)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, "client-123", cfg.Google.ClientID)
	// untouched keys keep their defaults
	assert.Equal(t, "@every 10m", cfg.OTP.CleanupSchedule)
	assert.True(t, cfg.Auth.AllowLegacyUniqueID)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestEmailCredentialsEnableDelivery(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EMAIL_USER", "shop@example.com")
	t.Setenv("EMAIL_PASS", "app-password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, "shop@example.com", cfg.Email.FromEmail)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Store.Driver = "sqlite"
	cfg.Lock.Driver = LockRedis
	cfg.Auth.BcryptCost = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
	assert.Contains(t, err.Error(), "lock.redis_addr")
	assert.Contains(t, err.Error(), "bcrypt_cost")
}

func TestValidateRedisLockOutlivesMailSend(t *testing.T) {
	cfg := Default()
	assert.Greater(t, cfg.Lock.TTL, cfg.Email.SendTimeout)

	cfg.Lock.Driver = LockRedis
	cfg.Lock.RedisAddr = "localhost:6379"
	require.NoError(t, cfg.Validate())

	cfg.Lock.TTL = 10 * time.Second
	cfg.Email.SendTimeout = 15 * time.Second
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock.ttl")
}
