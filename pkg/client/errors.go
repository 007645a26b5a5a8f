package client

import "errors"

// Package-specific errors, comparable with errors.Is.
var (
	// ErrInvalidBaseURL is returned by New when the base URL is missing,
	// unparsable, or not http/https.
	ErrInvalidBaseURL = errors.New("invalid API base URL")

	// ErrMissingToken is returned by New when no access token is supplied.
	ErrMissingToken = errors.New("access token is required")

	// ErrInvalidRequest is returned when a request descriptor is malformed,
	// for example when path placeholders and parameters do not line up.
	ErrInvalidRequest = errors.New("invalid request descriptor")

	// ErrCircuitOpen is returned when the configured circuit breaker is
	// rejecting requests to the API.
	ErrCircuitOpen = errors.New("api circuit breaker is open")

	// ErrDecodeResponse is returned when a successful response body cannot be
	// decoded into the declared result type.
	ErrDecodeResponse = errors.New("failed to decode response body")
)
