package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int      `env:"TEST_CFG_PORT" envDefault:"8010"`
	Driver   string   `env:"TEST_CFG_DRIVER" envDefault:"redis"`
	TaxRate  float64  `env:"TEST_CFG_TAX_RATE" envDefault:"0.08"`
	Enabled  bool     `env:"TEST_CFG_ENABLED" envDefault:"false"`
	Brokers  []string `env:"TEST_CFG_BROKERS" envDefault:"a:9092,b:9092" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8010, cfg.Port)
	assert.Equal(t, "redis", cfg.Driver)
	assert.InDelta(t, 0.08, cfg.TaxRate, 1e-9)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_DRIVER", "bolt")
	t.Setenv("TEST_CFG_ENABLED", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "bolt", cfg.Driver)
	assert.True(t, cfg.Enabled)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type requiredConfig struct {
	OrderAPI string `env:"TEST_CFG_ORDER_API,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadFrom_UsesGivenVariables(t *testing.T) {
	var cfg testConfig
	err := LoadFrom(&cfg, map[string]string{
		"TEST_CFG_DRIVER":  "memory",
		"TEST_CFG_BROKERS": "kafka:9092",
	})

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Driver)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Brokers)
	assert.Equal(t, 8010, cfg.Port)
}
