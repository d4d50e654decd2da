package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.True(t, c.SeedUsers)
	assert.Equal(t, "USD", c.Currency)
	assert.Empty(t, c.MetricsAddr)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "memory", mutate: func(c *Config) { c.StorageDriver = DriverMemory }},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "mongo" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_UsesDefaultsWithoutSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempFile(t, "cfg.json", `{"storage_driver":"redis","redis_addr":"file:6379","session_ttl":"2h"}`)
	t.Setenv("STOREFRONT_REDIS_ADDR", "env:6379")
	t.Setenv("STOREFRONT_SESSION_TTL", "3h")

	cfg, err := Load([]string{"-c", path, "-ttl", "4h"})
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.StorageDriver, "file overrides default")
	assert.Equal(t, "env:6379", cfg.RedisAddr, "env overrides file")
	assert.Equal(t, 4*time.Hour, cfg.SessionTTL, "flag overrides env")
}

func TestLoad_RejectsInvalidResult(t *testing.T) {
	_, err := Load([]string{"-s", "mongo"})
	assert.Error(t, err)
}
