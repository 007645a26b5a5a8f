package client

import (
	"net/http"
	"time"
)

// requestSettings are per-call overrides layered on top of the client's
// process-wide defaults.
type requestSettings struct {
	headers         map[string]string
	mutator         func(*http.Request) error
	retries         *int
	backoff         BackoffStrategy
	idempotencyKey  string
	strictConflicts bool
}

func newRequestSettings(opts []RequestOption) *requestSettings {
	s := &requestSettings{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestOption configures a single Execute call.
type RequestOption func(*requestSettings)

// WithHeader sets a header on every attempt of this call, replacing a
// same-named default header rather than merging with it.
func WithHeader(key, value string) RequestOption {
	return func(s *requestSettings) {
		if key != "" {
			s.headers[key] = value
		}
	}
}

// WithHeaders sets multiple override headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(s *requestSettings) {
		for k, v := range headers {
			if k != "" {
				s.headers[k] = v
			}
		}
	}
}

// WithRequestMutator registers a hook invoked after all default request
// construction, as the final customization point. Returning an error aborts
// the call.
func WithRequestMutator(fn func(*http.Request) error) RequestOption {
	return func(s *requestSettings) {
		s.mutator = fn
	}
}

// WithRequestRetries overrides the retry bound for this call only.
func WithRequestRetries(n int) RequestOption {
	return func(s *requestSettings) {
		if n >= 0 {
			s.retries = &n
		}
	}
}

// WithRequestRetryDelay overrides the inter-retry delay for this call only.
func WithRequestRetryDelay(d time.Duration) RequestOption {
	return func(s *requestSettings) {
		if d > 0 {
			s.backoff = FixedBackoff{Interval: d}
		}
	}
}

// WithRequestBackoff overrides the retry delay strategy for this call only.
func WithRequestBackoff(strategy BackoffStrategy) RequestOption {
	return func(s *requestSettings) {
		if strategy != nil {
			s.backoff = strategy
		}
	}
}

// WithIdempotencyKey supplies the idempotency key instead of generating one.
// The same key is sent on every retry attempt of the call.
func WithIdempotencyKey(key string) RequestOption {
	return func(s *requestSettings) {
		s.idempotencyKey = key
	}
}

// WithStrictConflicts disables transparent resolution of idempotent creation
// conflicts; the conflict surfaces as an invalid-state API error instead.
func WithStrictConflicts() RequestOption {
	return func(s *requestSettings) {
		s.strictConflicts = true
	}
}
