package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/bankpay/pkg/apierror"
)

// maxResponseSize bounds response reads to prevent memory exhaustion.
const maxResponseSize = 10 << 20

// outcomeKind is the result class of a single HTTP attempt. The retry loop
// switches on it, keeping retry policy in one place.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeTerminal
	outcomeConflict
)

type attemptOutcome struct {
	kind       outcomeKind
	resp       *Response
	err        error
	conflictID string
	statusCode int
	duration   time.Duration
}

// Execute runs one logical API call: it builds and sends HTTP attempts,
// retries transient transport failures up to the configured bound with a
// stable idempotency key, resolves idempotent creation conflicts, and
// decodes the successful response into result (which may be nil).
//
// Classified API errors return as *apierror.APIError, never retried. The
// final attempt's transport error propagates unwrapped.
func (c *Client) Execute(ctx context.Context, req Request, result any, opts ...RequestOption) (*Response, error) {
	settings := newRequestSettings(opts)

	path, err := req.resolvePath()
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	// Generated once per logical call, never per attempt: the server relies
	// on a stable key to recognize retried attempts as one operation.
	idempotencyKey := settings.idempotencyKey
	if req.RequiresIdempotencyKey && idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}

	retries := c.retries
	if settings.retries != nil {
		retries = *settings.retries
	}
	backoff := c.backoff
	if settings.backoff != nil {
		backoff = settings.backoff
	}

	for attempt := 0; ; attempt++ {
		if c.breaker != nil && !c.breaker.Allow() {
			return nil, ErrCircuitOpen
		}

		out := c.attempt(ctx, req, endpoint, path, body, idempotencyKey, settings, attempt)

		if c.breaker != nil {
			if out.kind == outcomeRetryable {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		if c.onAttempt != nil {
			c.onAttempt(AttemptInfo{
				Attempt:    attempt + 1,
				Method:     req.Method,
				Path:       path,
				StatusCode: out.statusCode,
				Duration:   out.duration,
				Err:        out.err,
			})
		}

		switch out.kind {
		case outcomeSuccess:
			if err := out.resp.Decode(req.Envelope, result); err != nil {
				return out.resp, err
			}
			return out.resp, nil

		case outcomeConflict:
			// The resource already exists under this idempotency key; fetch
			// it instead of failing. A resolver failure is terminal, not
			// retried: the original create can no longer succeed.
			resolved, err := req.ConflictResolver(ctx, out.conflictID)
			if err != nil {
				return nil, err
			}
			if resolved != nil {
				if err := resolved.Decode(req.Envelope, result); err != nil {
					return resolved, err
				}
			}
			return resolved, nil

		case outcomeTerminal:
			return nil, out.err

		case outcomeRetryable:
			if attempt >= retries {
				// Retry budget exhausted: this was the final attempt, and
				// its transport error propagates unwrapped.
				return nil, out.err
			}
			delay := backoff.NextInterval(attempt + 1)
			if c.logger != nil {
				c.logger.DebugContext(ctx, "retrying api request",
					"method", req.Method, "path", path,
					"attempt", attempt+1, "delay", delay, "error", out.err)
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
}

// attempt performs one HTTP round trip and classifies the result. Each call
// builds a fresh request and, when signing is configured, a fresh signature
// with its own nonce and timestamp.
func (c *Client) attempt(ctx context.Context, req Request, endpoint, path string, body []byte, idempotencyKey string, settings *requestSettings, attempt int) attemptOutcome {
	start := time.Now()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, bodyReader)
	if err != nil {
		return attemptOutcome{kind: outcomeTerminal, err: fmt.Errorf("%w: %w", ErrInvalidRequest, err), duration: time.Since(start)}
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set(HeaderClientLibrary, c.library)
	httpReq.Header.Set(HeaderVersion, c.version)
	if idempotencyKey != "" {
		httpReq.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}

	// Per-call headers replace same-named defaults outright.
	for k, v := range settings.headers {
		httpReq.Header.Set(k, v)
	}

	if c.signer != nil {
		if err := c.signer.Sign(httpReq, body); err != nil {
			return attemptOutcome{kind: outcomeTerminal, err: err, duration: time.Since(start)}
		}
	}

	// The mutator is the final, highest-precedence customization point.
	if settings.mutator != nil {
		if err := settings.mutator(httpReq); err != nil {
			return attemptOutcome{kind: outcomeTerminal, err: err, duration: time.Since(start)}
		}
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "api request attempt",
			"method", req.Method, "path", path, "attempt", attempt+1)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// A cancelled or expired caller context is terminal; nothing will be
		// retried after the deadline.
		if ctx.Err() != nil {
			return attemptOutcome{kind: outcomeTerminal, err: ctx.Err(), duration: time.Since(start)}
		}
		if isRetryableTransportError(err) {
			return attemptOutcome{kind: outcomeRetryable, err: err, duration: time.Since(start)}
		}
		return attemptOutcome{kind: outcomeTerminal, err: err, duration: time.Since(start)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		// A connection dropped mid-body is a connection-level failure.
		return attemptOutcome{kind: outcomeRetryable, err: err, statusCode: resp.StatusCode, duration: time.Since(start)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return attemptOutcome{
			kind:       outcomeSuccess,
			resp:       &Response{HTTPResponse: resp, Body: respBody},
			statusCode: resp.StatusCode,
			duration:   time.Since(start),
		}
	}

	apiErr := apierror.Classify(resp, respBody)

	if !settings.strictConflicts && req.ConflictResolver != nil && apierror.IsIdempotentCreationConflict(apiErr) {
		if id, ok := apierror.ConflictingResourceID(apiErr); ok {
			return attemptOutcome{
				kind:       outcomeConflict,
				conflictID: id,
				err:        apiErr,
				statusCode: resp.StatusCode,
				duration:   time.Since(start),
			}
		}
	}

	return attemptOutcome{kind: outcomeTerminal, err: apiErr, statusCode: resp.StatusCode, duration: time.Since(start)}
}

// marshalBody serializes the request body once per logical call, wrapped
// under the declared envelope key, so retries send identical content.
func marshalBody(req Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	payload := req.Body
	if req.Envelope != "" {
		payload = map[string]any{req.Envelope: req.Body}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request body: %w", ErrInvalidRequest, err)
	}
	return body, nil
}

// isRetryableTransportError reports whether a transport failure is one of
// the two classes worth retrying: a timeout or a connection-level failure
// (DNS, TLS, refused or dropped connections). Anything else propagates.
func isRetryableTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}
