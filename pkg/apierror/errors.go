package apierror

import "errors"

// Sentinel error kinds, one per API error category. Every *APIError produced
// by Classify unwraps to exactly one of these, making errors.Is the primary
// way to branch on failure class.
var (
	// ErrAuthenticationFailed indicates missing or invalid credentials (401).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInsufficientPermissions indicates valid credentials that lack access
	// to the requested resource (403).
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// ErrRateLimitReached indicates the API rate limit was exhausted (429).
	ErrRateLimitReached = errors.New("rate limit reached")

	// ErrInvalidAPIUsage indicates a malformed or unsupported request (generic 4xx).
	ErrInvalidAPIUsage = errors.New("invalid API usage")

	// ErrInvalidState indicates the resource is not in a state that permits
	// the requested operation, including idempotent creation conflicts.
	ErrInvalidState = errors.New("invalid resource state")

	// ErrValidationFailed indicates field-level validation errors (422).
	ErrValidationFailed = errors.New("validation failed")

	// ErrInternal indicates a server-side failure with a structured body (5xx).
	ErrInternal = errors.New("internal server error")

	// ErrMalformedResponse indicates a response body that could not be decoded
	// as the expected JSON error envelope, at any status code.
	ErrMalformedResponse = errors.New("malformed response received from server")
)
