package webhook

import "errors"

// Package-specific errors, comparable with errors.Is.
var (
	// ErrInvalidSignature is returned when the payload signature does not
	// match the shared secret. No event data is exposed in this case.
	ErrInvalidSignature = errors.New("webhook signature mismatch")

	// ErrMissingSecret is returned when no shared secret is supplied.
	ErrMissingSecret = errors.New("webhook secret is required")

	// ErrMissingSignature is returned when the signature header is empty.
	ErrMissingSignature = errors.New("webhook signature is missing")

	// ErrInvalidPayload is returned when a verified body cannot be decoded
	// as an events envelope.
	ErrInvalidPayload = errors.New("invalid webhook payload")
)
