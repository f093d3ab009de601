package lookup

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jmcleod/tagrelay/crypto"
)

const (
	DefaultTimeout          = 15 * time.Second
	DefaultBreakerThreshold = 5
	DefaultBreakerCooldown  = 30 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying transport client. Its cookie jar,
// if any, is cleared.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCipher replaces the payload cipher. The default is crypto.ECBCipher.
func WithCipher(pc crypto.PayloadCipher) Option {
	return func(c *Client) {
		c.cipher = pc
	}
}

// WithClock replaces the wall clock used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithRegion sets the upstream country code sent in the payload and the
// X-Network-Country / X-Country-Code headers.
func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithDeviceID sets the X-Client-Device-Id header.
func WithDeviceID(id string) Option {
	return func(c *Client) {
		c.deviceID = id
	}
}

// WithDefaultDialCode sets the dial code used when a Request has none.
func WithDefaultDialCode(code string) Option {
	return func(c *Client) {
		c.dialCode = code
	}
}

// WithBreaker configures the circuit breaker around upstream calls. It opens
// after threshold consecutive transport failures and stays open for
// cooldown. A threshold of 0 disables the breaker.
func WithBreaker(threshold uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		c.breakerThreshold = threshold
		c.breakerCooldown = cooldown
	}
}

// WithLogger sets the structured logger.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaskedNumbers controls whether phone numbers are masked in logs.
func WithMaskedNumbers(enabled bool) Option {
	return func(c *Client) {
		c.maskNumbers = enabled
	}
}
