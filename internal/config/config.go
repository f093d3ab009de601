// Package config loads relay settings from TAGRELAY_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/jmcleod/tagrelay/crypto"
	"github.com/jmcleod/tagrelay/phone"
)

// Prefix is prepended to every environment variable name.
const Prefix = "TAGRELAY"

// Config holds the relay's runtime settings.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":3001"`
	TLSCert    string `envconfig:"TLS_CERT"`
	TLSKey     string `envconfig:"TLS_KEY"`

	// KeyMaterial is the obfuscated hex blob carrying the signing key and
	// upstream endpoint.
	KeyMaterial string `envconfig:"KEY_MATERIAL"`

	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`
	UpstreamRegion  string        `envconfig:"UPSTREAM_REGION" default:"us"`
	DeviceID        string        `envconfig:"DEVICE_ID" default:"063579f5e0654a4e"`
	DefaultDialCode string        `envconfig:"DEFAULT_DIAL_CODE" default:"+62"`

	BreakerThreshold uint32        `envconfig:"BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"json"`
	LogMaskNumbers bool   `envconfig:"LOG_MASK_NUMBERS" default:"true"`
}

// Load reads the environment, applies overrides in order and validates the
// result. Overrides let command-line flags take precedence over the
// environment.
func Load(overrides ...func(*Config)) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check on its own. KeyMaterial is
// required but may come from a flag, so it is checked here.
func (c *Config) Validate() error {
	if _, err := crypto.DecodeKeyMaterial(c.KeyMaterial); err != nil {
		return fmt.Errorf("%s_KEY_MATERIAL: %w", Prefix, err)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("%s_UPSTREAM_TIMEOUT must be positive", Prefix)
	}
	if strings.TrimSpace(c.UpstreamRegion) == "" {
		return fmt.Errorf("%s_UPSTREAM_REGION must not be empty", Prefix)
	}
	if !phone.ValidDialCode(c.DefaultDialCode) {
		return fmt.Errorf("%s_DEFAULT_DIAL_CODE must look like +62, got %q", Prefix, c.DefaultDialCode)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("%s_TLS_CERT and %s_TLS_KEY must be set together", Prefix, Prefix)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be json or text, got %q", Prefix, c.LogFormat)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%s_LOG_LEVEL: %w", Prefix, err)
	}
	return lvl, nil
}
