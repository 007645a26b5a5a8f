package signing

import "errors"

// Package-specific errors, comparable with errors.Is.
var (
	// ErrInvalidPrivateKey is returned when the signing key is not a valid
	// PEM-encoded ECDSA private key.
	ErrInvalidPrivateKey = errors.New("invalid signing private key")

	// ErrInvalidPublicKey is returned when the verification key is not a
	// valid PEM-encoded ECDSA public key.
	ErrInvalidPublicKey = errors.New("invalid verification public key")

	// ErrMissingKeyID is returned when a signer is constructed without a key id.
	ErrMissingKeyID = errors.New("signing key id is required")

	// ErrSigningFailed is returned when the ECDSA signing operation fails.
	ErrSigningFailed = errors.New("request signing failed")

	// ErrSignatureMismatch is returned by Verify when the signature does not
	// match the signature base.
	ErrSignatureMismatch = errors.New("signature verification failed")

	// ErrInvalidSignatureEncoding is returned by Verify when the signature is
	// not valid base64.
	ErrInvalidSignatureEncoding = errors.New("signature is not valid base64")
)
