package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "cart-storage", cfg.StorageNamespace)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.InDelta(t, 0.08, cfg.TaxRate, 1e-9)
	assert.InDelta(t, 4.99, cfg.GiftWrapFee, 1e-9)
	assert.InDelta(t, 100, cfg.FreeShippingThreshold, 1e-9)
	assert.Equal(t, 30*24*time.Hour, cfg.StateTTL())
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle())
	assert.True(t, cfg.EventsEnabled)
	assert.False(t, cfg.OTELEnabled)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"STORAGE_DRIVER":       "bolt",
		"BOLT_PATH":            "/var/lib/storefront/state.db",
		"KAFKA_BROKERS":        "k1:9092,k2:9092",
		"TAX_RATE":             "0.2",
		"STOREFRONT_HTTP_PORT": "9000",
	})

	require.NoError(t, err)
	assert.Equal(t, DriverBolt, cfg.StorageDriver)
	assert.Equal(t, "/var/lib/storefront/state.db", cfg.BoltPath)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.InDelta(t, 0.2, cfg.TaxRate, 1e-9)
	assert.Equal(t, 9000, cfg.HTTPPort)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
	}{
		{"port", map[string]string{"STOREFRONT_HTTP_PORT": "0"}, "invalid HTTP port"},
		{"driver", map[string]string{"STORAGE_DRIVER": "postgres"}, "unknown STORAGE_DRIVER"},
		{"sample rate", map[string]string{"OTEL_SAMPLE_RATE": "2.0"}, "OTEL_SAMPLE_RATE must be between 0.0 and 1.0"},
		{"negative rate", map[string]string{"GIFT_WRAP_FEE": "-1"}, "GIFT_WRAP_FEE must not be negative"},
		{"idle", map[string]string{"SESSION_IDLE_MINUTES": "0"}, "SESSION_IDLE_MINUTES must be positive"},
		{"parse", map[string]string{"TAX_RATE": "lots"}, "load storefront config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(tt.vars)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("EVENTS_ENABLED", "false")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.False(t, cfg.EventsEnabled)
}
