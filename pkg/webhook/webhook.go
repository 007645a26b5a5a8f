package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SignatureHeader is the request header carrying the payload signature.
const SignatureHeader = "Webhook-Signature"

// maxBodySize bounds ParseRequest reads to prevent memory exhaustion from
// oversized payloads.
const maxBodySize = 1 << 20

// Event is a single webhook event record. Events are only produced after the
// payload signature has been verified.
type Event struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	ResourceType string            `json:"resource_type"`
	Action       string            `json:"action"`
	Links        map[string]string `json:"links,omitempty"`
	Details      map[string]any    `json:"details,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// envelope mirrors the webhook payload shape.
type envelope struct {
	Events []Event `json:"events"`
}

// Parse verifies the payload signature and decodes the events list in
// delivery order. Verification happens before any JSON decoding: a body with
// a mismatched signature returns ErrInvalidSignature and never exposes parsed
// event data.
func Parse(body []byte, secret, signature string) ([]Event, error) {
	if err := VerifySignature(secret, body, signature); err != nil {
		return nil, err
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return payload.Events, nil
}

// ParseRequest reads the body and signature header from an inbound HTTP
// request and parses its events. The request body is consumed.
func ParseRequest(r *http.Request, secret string) ([]Event, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading request body: %w", ErrInvalidPayload, err)
	}
	return Parse(body, secret, r.Header.Get(SignatureHeader))
}

// VerifySignature checks the lower-case hex HMAC-SHA256 signature of the raw
// body bytes against the shared secret. Comparison is constant-time.
func VerifySignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if signature == "" {
		return ErrMissingSignature
	}

	if !hmac.Equal([]byte(Sign(secret, body)), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the signature the API attaches to a payload: lower-case hex
// HMAC-SHA256 of the raw body keyed by the shared secret. Exposed for tests
// and for building local webhook simulators.
func Sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
