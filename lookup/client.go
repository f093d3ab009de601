// Package lookup implements the signed, encrypted phone-number lookup
// against the upstream tag service.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/jmcleod/tagrelay/crypto"
	"github.com/jmcleod/tagrelay/internal/logging"
	"github.com/jmcleod/tagrelay/phone"
)

// Request carries the per-call credentials. Nothing in it is retained after
// Check returns.
type Request struct {
	PhoneNumber string
	Token       string
	FinalKey    string
	// DialCode overrides the client's default dial code, e.g. "+60".
	DialCode string
}

// Result is a successful lookup.
type Result struct {
	Number string   `json:"number"`
	Tags   []string `json:"tags"`
}

// Client performs lookups. It is safe for concurrent use; every call builds
// its own payload, timestamp and signature.
type Client struct {
	keys   *crypto.KeyMaterial
	cipher crypto.PayloadCipher
	now    func() time.Time

	httpClient *http.Client
	rest       *resty.Client
	cb         *gobreaker.CircuitBreaker
	timeout    time.Duration

	region   string
	deviceID string
	dialCode string

	breakerThreshold uint32
	breakerCooldown  time.Duration

	logger      *slog.Logger
	maskNumbers bool
}

// NewClient creates a Client that signs with keys and posts to keys.Endpoint().
func NewClient(keys *crypto.KeyMaterial, opts ...Option) *Client {
	c := &Client{
		keys:             keys,
		cipher:           crypto.ECBCipher{},
		now:              time.Now,
		timeout:          DefaultTimeout,
		region:           DefaultRegion,
		deviceID:         DefaultDeviceID,
		dialCode:         phone.DefaultDialCode,
		breakerThreshold: DefaultBreakerThreshold,
		breakerCooldown:  DefaultBreakerCooldown,
		maskNumbers:      true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "lookup")

	if c.httpClient != nil {
		c.rest = resty.NewWithClient(c.httpClient)
	} else {
		c.rest = resty.New()
	}
	// No cookie jar: a session cookie set on one caller's lookup must never
	// ride along on another's.
	c.rest.SetTimeout(c.timeout).
		SetLogger(restyLogger{c.logger}).
		SetRetryCount(0).
		SetCookieJar(nil)

	if c.breakerThreshold > 0 {
		c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "upstream",
			MaxRequests: 1,
			Timeout:     c.breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= c.breakerThreshold
			},
			IsSuccessful: breakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("circuit breaker state changed",
					"cb_name", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		})
	}
	return c
}

// Check runs one lookup: build, timestamp, sign, encrypt, transmit, decrypt
// and extract. It never retries.
func (c *Client) Check(ctx context.Context, req Request) (*Result, error) {
	lookupID := uuid.NewString()
	start := time.Now()

	res, err := c.check(ctx, req)

	number := req.PhoneNumber
	if res != nil {
		number = res.Number
	}
	attrs := []any{
		"lookup_id", lookupID,
		"number", logging.MaskNumber(number, c.maskNumbers),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		c.logger.Warn("lookup failed", append(attrs, "kind", string(KindOf(err)), "error", err.Error())...)
		return nil, err
	}
	c.logger.Info("lookup succeeded", append(attrs, "tag_count", len(res.Tags))...)
	return res, nil
}

func (c *Client) check(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, newError(KindConfiguration, "token is required", nil)
	}
	if strings.TrimSpace(req.FinalKey) == "" {
		return nil, newError(KindConfiguration, "final key is required", nil)
	}

	dialCode := req.DialCode
	if dialCode == "" {
		dialCode = c.dialCode
	}
	number, err := phone.Normalize(req.PhoneNumber, dialCode)
	if err != nil {
		return nil, newError(KindValidation, "invalid phone number", err)
	}

	body, err := marshalCompact(payload{
		CountryCode: c.region,
		PhoneNumber: number,
		Source:      payloadSource,
		Token:       req.Token,
	})
	if err != nil {
		return nil, newError(KindValidation, "encoding payload", err)
	}

	ts := c.now().UnixMilli()
	signature, err := c.keys.Sign(ts, body)
	if err != nil {
		return nil, newError(KindConfiguration, "signing request", err)
	}

	encrypted, err := c.cipher.Encrypt(body, req.FinalKey)
	if err != nil {
		return nil, newError(KindConfiguration, "encrypting payload", err)
	}
	reqBody, err := marshalCompact(envelope{Data: encrypted})
	if err != nil {
		return nil, newError(KindConfiguration, "encoding envelope", err)
	}

	resp, err := c.post(ctx, c.headers(req.Token, ts, signature), reqBody)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, newError(KindProtocol, fmt.Sprintf("upstream returned status %d", resp.StatusCode()), nil)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil || env.Data == "" {
		return nil, newError(KindProtocol, "invalid response from upstream", nil)
	}

	plain, err := c.cipher.Decrypt(env.Data, req.FinalKey)
	if err != nil {
		return nil, newError(KindDecryption, "failed to decrypt upstream response", err)
	}

	tags, err := ParseTags(plain)
	if err != nil {
		return nil, newError(KindProtocol, "failed to parse upstream response", nil)
	}

	return &Result{Number: number, Tags: tags}, nil
}

func (c *Client) headers(token string, ts int64, signature string) map[string]string {
	return map[string]string{
		HeaderOS:             DefaultOS,
		HeaderMobileService:  DefaultMobileService,
		HeaderAppVersion:     DefaultAppVersion,
		HeaderClientDeviceID: c.deviceID,
		HeaderLang:           DefaultLang,
		HeaderToken:          token,
		HeaderReqTimestamp:   strconv.FormatInt(ts, 10),
		HeaderEncrypted:      "1",
		HeaderNetworkCountry: c.region,
		HeaderCountryCode:    c.region,
		HeaderReqSignature:   signature,
		HeaderContentType:    ContentTypeJSON,
	}
}

// post sends the request through the breaker. Only transport failures count
// against the breaker; any HTTP response counts as success.
func (c *Client) post(ctx context.Context, headers map[string]string, body []byte) (*resty.Response, error) {
	send := func() (any, error) {
		return c.rest.R().
			SetContext(ctx).
			SetHeaders(headers).
			SetBody(body).
			Post(c.keys.Endpoint())
	}

	var (
		out any
		err error
	)
	if c.cb != nil {
		out, err = c.cb.Execute(send)
	} else {
		out, err = send()
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, newError(KindTransport, "upstream unavailable", err)
		}
		return nil, newError(KindTransport, "upstream request failed", transportCause(err))
	}
	return out.(*resty.Response), nil
}

// breakerSuccess reports whether a call outcome says the upstream is healthy.
// A caller that cancels its own context says nothing about the upstream.
func breakerSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// transportCause strips the wrappers that embed the endpoint URL, host or
// address so none of them reach an error message.
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("resolving upstream host: %s", dnsErr.Err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%s: %w", opErr.Op, opErr.Err)
	}
	return err
}

type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}
