package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Kurir tariff API
	KurirAccessKey string        `envconfig:"KURIR_ACCESS_KEY"`
	KurirSecretKey string        `envconfig:"KURIR_SECRET_KEY"`
	KurirBaseURL   string        `envconfig:"KURIR_BASE_URL" default:"https://api.kurir.dev/v1"`
	KurirOriginID  string        `envconfig:"KURIR_ORIGIN_ID"`
	KurirUseMock   bool          `envconfig:"KURIR_USE_MOCK" default:"false"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	SearchLimit    int           `envconfig:"SEARCH_LIMIT" default:"25"`

	// Fallback rate shown when the tariff service yields nothing
	FallbackCost  float64 `envconfig:"FALLBACK_COST" default:"25000"`
	FallbackLabel string  `envconfig:"FALLBACK_LABEL" default:"Flat Rate (estimated)"`

	// Session cache; empty REDIS_ADDR selects the in-memory cache
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"30m"`
	RedisAddr string        `envconfig:"REDIS_ADDR"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"fastrac-shipping"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// CacheBackend names the configured session cache implementation.
func (c *Config) CacheBackend() string {
	if c.RedisAddr != "" {
		return "redis"
	}
	return "memory"
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("kurir.use_mock", c.KurirUseMock),
		attribute.String("cache.backend", c.CacheBackend()),
	}
}
