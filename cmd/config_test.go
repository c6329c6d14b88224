package cmd

import (
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DISPATCH_RETRY_DELAY", "")
	t.Setenv("DISPATCH_RADIUS_KM", "")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, config.StoreDriver)
	assert.Equal(t, 120*time.Second, config.DispatchRetryDelay)
	assert.InDelta(t, 3.0, config.DispatchRadiusKm, 1e-9)
	assert.InDelta(t, 10.0, config.DispatchWideRadiusKm, 1e-9)
	assert.Equal(t, 30*time.Minute, config.DriverStaleAfter)
	assert.InDelta(t, 35.0, config.DeliveryFee, 1e-9)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("DISPATCH_RETRY_DELAY", "90")
	t.Setenv("DRIVER_STALE_AFTER", "45m")
	t.Setenv("DISPATCH_JITTER_RANGE", "0")
	t.Setenv("REDIS_DB", "2")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, config.StoreDriver)
	assert.Equal(t, 90*time.Second, config.DispatchRetryDelay)
	assert.Equal(t, 45*time.Minute, config.DriverStaleAfter)
	assert.Zero(t, config.ScoringPolicy().JitterRange)
	assert.Equal(t, 2, config.RedisDB)
}

func TestLoadConfig_MalformedValue(t *testing.T) {
	t.Setenv("DISPATCH_RADIUS_KM", "three")
	t.Setenv("REDIS_DB", "x")

	_, err := LoadConfig()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "DISPATCH_RADIUS_KM")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SHOP_TIMEZONE", "UTC")
	base, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.StoreDriver = "mongo" }},
		{"bad port", func(c *Config) { c.HTTPPort = "http" }},
		{"wide radius below radius", func(c *Config) { c.DispatchWideRadiusKm = 1 }},
		{"zero retry delay", func(c *Config) { c.DispatchRetryDelay = 0 }},
		{"negative fee", func(c *Config) { c.DeliveryFee = -1 }},
		{"unknown timezone", func(c *Config) { c.ShopTimezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}
