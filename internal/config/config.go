package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "VENDORHUB"

const (
	EnvProduction = "production"

	// DefaultVendorID is the vendor the apps create orders for when no other
	// identity is configured.
	DefaultVendorID = "83a93a3f-2f6e-4bf6-9f78-1c3f9f42b7b1"
)

type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MarketplaceURL     string        `envconfig:"MARKETPLACE_URL" required:"true" validate:"required,url"`
	MarketplaceTimeout time.Duration `envconfig:"MARKETPLACE_TIMEOUT" default:"15s" validate:"gt=0"`
	VendorID           string        `envconfig:"VENDOR_ID" default:"83a93a3f-2f6e-4bf6-9f78-1c3f9f42b7b1"`

	// Empty redis URIs keep sessions in memory and disable dashboard grouping.
	SessionsRedisURI  string        `envconfig:"SESSIONS_REDIS_URI"`
	GroupingRedisURI  string        `envconfig:"GROUPING_REDIS_URI"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"30m" validate:"gt=0"`
	DashboardCacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"15s" validate:"gte=0"`

	OpenAPILocation string `envconfig:"OPENAPI_LOCATION" default:"./api/openapi.json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.MarketplaceURL = strings.TrimRight(cfg.MarketplaceURL, "/")

	return &cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}
