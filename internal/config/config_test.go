package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEVICE_TOKEN_TTL", "")
	t.Setenv("LOCK_STRIPES", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 365*24*time.Hour, cfg.DeviceTokenTTL)
	assert.False(t, cfg.ResetStore)
	assert.Equal(t, 256, cfg.LockStripes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverRedis)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEVICE_TOKEN_TTL", "2h")
	t.Setenv("RESET_STORE", "true")
	t.Setenv("LOCK_STRIPES", "16")

	cfg := Load()

	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.DeviceTokenTTL)
	assert.True(t, cfg.ResetStore)
	assert.Equal(t, 16, cfg.LockStripes)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	t.Setenv("DEVICE_TOKEN_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 365*24*time.Hour, cfg.DeviceTokenTTL)
}
