package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App       AppConfig
	Pricing   PricingConfig
	Redis     RedisConfig
	DB        DBConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SPEEDYVAN_APP_ENV" required:"true"`
	Port         string `envconfig:"SPEEDYVAN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SPEEDYVAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPEEDYVAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig overrides the built-in rate table defaults. All monetary
// values are decimal pounds.
type PricingConfig struct {
	MinimumPrice     decimal.Decimal `envconfig:"SPEEDYVAN_PRICING_MINIMUM_PRICE" default:"55"`
	PerMileRate      decimal.Decimal `envconfig:"SPEEDYVAN_PRICING_PER_MILE_RATE" default:"2.5"`
	FreeMiles        float64         `envconfig:"SPEEDYVAN_PRICING_FREE_MILES" default:"2"`
	FirstTimePercent decimal.Decimal `envconfig:"SPEEDYVAN_PRICING_FIRST_TIME_PERCENT" default:"0.10"`
	WeekendPercent   decimal.Decimal `envconfig:"SPEEDYVAN_PRICING_WEEKEND_PERCENT" default:"0.10"`
	VATRate          decimal.Decimal `envconfig:"SPEEDYVAN_PRICING_VAT_RATE" default:"0.20"`
}

func (p PricingConfig) validate() error {
	if p.MinimumPrice.IsNegative() {
		return fmt.Errorf("minimum price cannot be negative")
	}
	if p.PerMileRate.IsNegative() {
		return fmt.Errorf("per-mile rate cannot be negative")
	}
	if p.FreeMiles < 0 {
		return fmt.Errorf("free miles cannot be negative")
	}
	if p.VATRate.IsNegative() || p.VATRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("vat rate must be in [0, 1)")
	}
	return nil
}

// RedisConfig is optional; an empty URL and address disables the quote cache
// and the redis-backed rate limiter.
type RedisConfig struct {
	URL          string        `envconfig:"SPEEDYVAN_REDIS_URL"`
	Address      string        `envconfig:"SPEEDYVAN_REDIS_ADDR"`
	Password     string        `envconfig:"SPEEDYVAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SPEEDYVAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SPEEDYVAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SPEEDYVAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SPEEDYVAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SPEEDYVAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SPEEDYVAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis connection is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// DBConfig is optional; an empty DSN keeps the promo table in memory.
type DBConfig struct {
	DSN    string `envconfig:"SPEEDYVAN_DB_DSN"`
	Driver string `envconfig:"SPEEDYVAN_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SPEEDYVAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SPEEDYVAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SPEEDYVAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPEEDYVAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Enabled reports whether a database connection is configured.
func (d DBConfig) Enabled() bool {
	return d.DSN != ""
}

type RateLimitConfig struct {
	QuoteWindow  time.Duration `envconfig:"SPEEDYVAN_RATE_LIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteIPLimit int           `envconfig:"SPEEDYVAN_RATE_LIMIT_QUOTE_IP_LIMIT" default:"60"`
}

type CacheConfig struct {
	QuoteTTL time.Duration `envconfig:"SPEEDYVAN_CACHE_QUOTE_TTL" default:"5m"`
	Enabled  bool          `envconfig:"SPEEDYVAN_CACHE_ENABLED" default:"true"`
}
