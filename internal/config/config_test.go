package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/tagrelay/crypto"
)

func testBlob(t *testing.T) string {
	t.Helper()
	blob, err := crypto.EncodeKeyMaterial(bytes.Repeat([]byte{0x42}, crypto.SigningKeySize), "https://upstream.example/v1/lookup")
	require.NoError(t, err)
	return blob
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TAGRELAY_KEY_MATERIAL", testBlob(t))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "us", cfg.UpstreamRegion)
	assert.Equal(t, "+62", cfg.DefaultDialCode)
	assert.Equal(t, uint32(5), cfg.BreakerThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerCooldown)
	assert.True(t, cfg.LogMaskNumbers)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TAGRELAY_KEY_MATERIAL", testBlob(t))
	t.Setenv("TAGRELAY_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("TAGRELAY_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("TAGRELAY_DEFAULT_DIAL_CODE", "+60")
	t.Setenv("TAGRELAY_LOG_LEVEL", "debug")
	t.Setenv("TAGRELAY_LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "+60", cfg.DefaultDialCode)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingKeyMaterial(t *testing.T) {
	t.Setenv("TAGRELAY_KEY_MATERIAL", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_FlagOverride(t *testing.T) {
	t.Setenv("TAGRELAY_KEY_MATERIAL", "")
	t.Setenv("TAGRELAY_LISTEN_ADDR", ":8080")
	blob := testBlob(t)

	cfg, err := Load(func(c *Config) { c.KeyMaterial = blob }, func(c *Config) { c.ListenAddr = ":9090" })
	require.NoError(t, err)
	assert.Equal(t, blob, cfg.KeyMaterial)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ListenAddr:      ":3001",
			KeyMaterial:     testBlob(t),
			UpstreamTimeout: time.Second,
			UpstreamRegion:  "us",
			DefaultDialCode: "+62",
			LogLevel:        "info",
			LogFormat:       "json",
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"BadKeyMaterial", func(c *Config) { c.KeyMaterial = "abcd" }},
		{"ZeroTimeout", func(c *Config) { c.UpstreamTimeout = 0 }},
		{"EmptyRegion", func(c *Config) { c.UpstreamRegion = " " }},
		{"BadDialCode", func(c *Config) { c.DefaultDialCode = "62" }},
		{"HalfTLS", func(c *Config) { c.TLSCert = "cert.pem" }},
		{"BadLevel", func(c *Config) { c.LogLevel = "loud" }},
		{"BadFormat", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
