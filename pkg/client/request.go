package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ConflictResolver fetches the resource that was already created under the
// same idempotency key. It is invoked when the API reports an idempotent
// creation conflict and strict conflict reporting is off.
type ConflictResolver func(ctx context.Context, conflictingID string) (*Response, error)

// Request describes one logical API call. It is immutable for the duration
// of the call: path substitution, query encoding and body serialization
// happen once, so every retry attempt sends identical content.
type Request struct {
	// Method is the HTTP method.
	Method string

	// Path is the endpoint template with :name placeholders,
	// e.g. "/payments/:identity".
	Path string

	// PathParams substitute the placeholders positionally, in order.
	// Values are percent-encoded.
	PathParams []string

	// Query is the ordered declarative query field list.
	Query QueryParams

	// Body is serialized to JSON and wrapped under Envelope for
	// body-carrying methods. Nil means no request body.
	Body any

	// Envelope is the payload key the API wraps this resource under, both in
	// request bodies and successful response bodies. Empty means unwrapped.
	Envelope string

	// RequiresIdempotencyKey marks creation-style calls. When set and no key
	// was supplied via WithIdempotencyKey, a key is generated once for the
	// logical call and reused on every retry attempt.
	RequiresIdempotencyKey bool

	// ConflictResolver resolves idempotent creation conflicts by fetching
	// the already-created resource. Nil leaves conflicts as errors.
	ConflictResolver ConflictResolver
}

// resolvePath substitutes :name placeholders with the positional parameters.
func (r Request) resolvePath() (string, error) {
	segments := strings.Split(r.Path, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(r.PathParams) {
			return "", fmt.Errorf("%w: path %q expects more than %d parameters", ErrInvalidRequest, r.Path, len(r.PathParams))
		}
		segments[i] = url.PathEscape(r.PathParams[next])
		next++
	}
	if next < len(r.PathParams) {
		return "", fmt.Errorf("%w: path %q has %d placeholders but %d parameters were given", ErrInvalidRequest, r.Path, next, len(r.PathParams))
	}
	return strings.Join(segments, "/"), nil
}
