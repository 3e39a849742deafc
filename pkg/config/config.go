package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "SAUDIMART"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Quote   QuoteConfig
	JWT     JWTConfig
	Redis   RedisConfig
	Cache   CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Quote.TaxRateDecimal(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SAUDIMART_APP_ENV" required:"true"`
	Port         string `envconfig:"SAUDIMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SAUDIMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SAUDIMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the persistence API that owns catalog data.
type BackendConfig struct {
	BaseURL     string        `envconfig:"SAUDIMART_BACKEND_BASE_URL" required:"true"`
	CallTimeout time.Duration `envconfig:"SAUDIMART_BACKEND_CALL_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend base url %q is not an absolute url", b.BaseURL)
	}
	if b.CallTimeout <= 0 {
		return fmt.Errorf("backend call timeout must be positive")
	}
	return nil
}

// QuoteConfig carries the externally supplied quotation policy values.
type QuoteConfig struct {
	TaxRate      string `envconfig:"SAUDIMART_QUOTE_TAX_RATE" default:"0.15"`
	ValidityDays int    `envconfig:"SAUDIMART_QUOTE_VALIDITY_DAYS" default:"30"`
}

// TaxRateDecimal parses the configured tax rate. The rate lives in config, not
// in the engine, so deployments that quote tax-free set it to "0".
func (q QuoteConfig) TaxRateDecimal() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(q.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing quote tax rate %q: %w", q.TaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("quote tax rate must not be negative")
	}
	return rate, nil
}

// Validity returns the configured quote validity window.
func (q QuoteConfig) Validity() time.Duration {
	if q.ValidityDays <= 0 {
		return 0
	}
	return time.Duration(q.ValidityDays) * 24 * time.Hour
}

type JWTConfig struct {
	Secret string `envconfig:"SAUDIMART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SAUDIMART_JWT_ISSUER" required:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SAUDIMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SAUDIMART_REDIS_ADDR"`
	Password     string        `envconfig:"SAUDIMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SAUDIMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SAUDIMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SAUDIMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SAUDIMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SAUDIMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SAUDIMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	ProductTTL time.Duration `envconfig:"SAUDIMART_CACHE_PRODUCT_TTL" default:"5m"`
}
