package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the authentication client.
//
// Fields:
//   - BaseURL: root of the authentication backend (scheme + host [+ path]).
//   - RequestTimeout: per-request HTTP timeout.
//   - StoreBackend / StorePath / RedisAddr / RedisNamespace: session storage.
//   - SealPassphrase: when set, session values are encrypted at rest.
//   - Locale: language of user notifications ("vi" or "en").
//   - LogBackend / LogLevel: structured logger selection.
type Config struct {
	BaseURL        string        `env:"AUTHKEEPER_BASE_URL" validate:"required,url"`
	RequestTimeout time.Duration `env:"AUTHKEEPER_REQUEST_TIMEOUT" validate:"gt=0"`
	StoreBackend   string        `env:"AUTHKEEPER_STORE_BACKEND" validate:"oneof=sqlite redis memory"`
	StorePath      string        `env:"AUTHKEEPER_STORE_PATH" validate:"required_if=StoreBackend sqlite"`
	RedisAddr      string        `env:"AUTHKEEPER_REDIS_ADDR" validate:"required_if=StoreBackend redis"`
	RedisNamespace string        `env:"AUTHKEEPER_REDIS_NAMESPACE"`
	SealPassphrase string        `env:"AUTHKEEPER_SEAL_PASSPHRASE"`
	Locale         string        `env:"AUTHKEEPER_LOCALE" validate:"oneof=vi en"`
	LogBackend     string        `env:"AUTHKEEPER_LOG_BACKEND" validate:"oneof=slog zap"`
	LogLevel       string        `env:"AUTHKEEPER_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.StoreBackend = "sqlite"
	c.StorePath = "session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisNamespace = "authkeeper:session"
	c.Locale = "vi"
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints after all sources were applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
