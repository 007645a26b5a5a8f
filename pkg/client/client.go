package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/bankpay/pkg/signing"
)

// Headers set on every request. Idempotency-Key appears only on request
// types that declare RequiresIdempotencyKey.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderClientLibrary  = "Gc-Client-Library"
	HeaderVersion        = "Gc-Version"
)

// Process-wide defaults, overridable at construction and per call.
const (
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond

	defaultClientLibrary = "bankpay-go"
	defaultAPIVersion    = "2024-03-01"
	defaultTimeout       = 30 * time.Second
)

// AttemptInfo describes one HTTP attempt of a logical call, passed to the
// OnAttempt hook for metrics and logging.
type AttemptInfo struct {
	Attempt    int
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// AttemptHook is called after each HTTP attempt.
type AttemptHook func(info AttemptInfo)

// Client executes logical API calls. Immutable after New and safe for
// concurrent use; the only state shared between concurrent calls is this
// read-only configuration and the transport's connection pool.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	library string
	version string

	retries int
	backoff BackoffStrategy

	signer    *signing.Signer
	breaker   *CircuitBreaker
	logger    *slog.Logger
	onAttempt AttemptHook
}

// Option configures a Client at construction.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for custom transports,
// proxies, or tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetries sets the default retry bound for transient failures.
// Total attempts per call is retries + 1. Zero disables retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay sets a fixed delay between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = FixedBackoff{Interval: d}
		}
	}
}

// WithBackoff sets the retry delay strategy.
func WithBackoff(strategy BackoffStrategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.backoff = strategy
		}
	}
}

// WithSigner enables HTTP message signing of every attempt.
func WithSigner(signer *signing.Signer) Option {
	return func(c *Client) {
		c.signer = signer
	}
}

// WithCircuitBreaker protects calls with a circuit breaker. Reuse one
// instance per API host.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithLogger enables attempt-level debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClientLibrary overrides the client identification header value.
func WithClientLibrary(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.library = name
		}
	}
}

// WithAPIVersion overrides the API version header value.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.version = version
		}
	}
}

// WithOnAttempt sets a hook invoked after every HTTP attempt.
func WithOnAttempt(hook AttemptHook) Option {
	return func(c *Client) {
		c.onAttempt = hook
	}
}

// New creates an API client for the given base URL and bearer token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidBaseURL)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		library: defaultClientLibrary,
		version: defaultAPIVersion,
		retries: DefaultRetries,
		backoff: FixedBackoff{Interval: DefaultRetryDelay},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Must creates a client that panics on invalid configuration. Use at
// process startup where a broken client should halt initialization.
func Must(baseURL, token string, opts ...Option) *Client {
	c, err := New(baseURL, token, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }
