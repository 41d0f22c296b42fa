package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/knightempire/e-commerce-frontend/pkg/config"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverRedis  = "redis"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Persistence
	StorageDriver    string `env:"STORAGE_DRIVER" envDefault:"redis"`
	StorageNamespace string `env:"STORAGE_NAMESPACE" envDefault:"cart-storage"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	StateTTLHours    int    `env:"STATE_TTL_HOURS" envDefault:"720"`
	BoltPath         string `env:"BOLT_PATH" envDefault:"storefront.db"`

	// Sessions are evicted from memory after this many idle minutes.
	SessionIdleMinutes int `env:"SESSION_IDLE_MINUTES" envDefault:"30"`

	// Kafka
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"true"`

	// Pricing
	PromoCatalogPath      string  `env:"PROMO_CATALOG_PATH" envDefault:""`
	TaxRate               float64 `env:"TAX_RATE" envDefault:"0.08"`
	SavingsRate           float64 `env:"SAVINGS_RATE" envDefault:"0.10"`
	GiftWrapFee           float64 `env:"GIFT_WRAP_FEE" envDefault:"4.99"`
	ExpressShippingFee    float64 `env:"EXPRESS_SHIPPING_FEE" envDefault:"9.99"`
	StandardShippingFee   float64 `env:"STANDARD_SHIPPING_FEE" envDefault:"5.99"`
	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"100"`

	// Order submission
	OrderAPIURL string `env:"ORDER_API_URL" envDefault:"http://localhost:8080"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load(func(cfg *Config) error { return pkgconfig.Load(cfg) })
}

// LoadFrom reads configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(func(cfg *Config) error { return pkgconfig.LoadFrom(cfg, vars) })
}

func load(parse func(*Config) error) (*Config, error) {
	cfg := &Config{}
	if err := parse(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StateTTL is how long persisted state survives without a write.
func (c *Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLHours) * time.Hour
}

// SessionIdle is how long an unused session stays in memory.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	switch c.StorageDriver {
	case DriverRedis, DriverBolt, DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want redis, bolt or memory)", c.StorageDriver)
	}

	if c.StorageNamespace == "" {
		return fmt.Errorf("STORAGE_NAMESPACE is required")
	}
	if c.SessionIdleMinutes < 1 {
		return fmt.Errorf("SESSION_IDLE_MINUTES must be positive")
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
	}

	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}

	rates := map[string]float64{
		"TAX_RATE":                c.TaxRate,
		"SAVINGS_RATE":            c.SavingsRate,
		"GIFT_WRAP_FEE":           c.GiftWrapFee,
		"EXPRESS_SHIPPING_FEE":    c.ExpressShippingFee,
		"STANDARD_SHIPPING_FEE":   c.StandardShippingFee,
		"FREE_SHIPPING_THRESHOLD": c.FreeShippingThreshold,
	}
	for name, v := range rates {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}

	return nil
}
