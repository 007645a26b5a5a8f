// Package signing implements HTTP message signatures for outbound API
// requests, in the scheme the payments API verifies server-side.
//
// A signed request carries three headers:
//
//	Gc-Signature:       sig-1=:<base64 ECDSA signature>:
//	Gc-Signature-Input: sig-1=("@method" "@authority" "@request-target" ...);keyid="...";created=...;nonce="..."
//	Content-Digest:     sha256=:<base64 SHA-256 of the body>:   (body present only)
//
// The signature covers a canonical base string rebuilt by the verifier from
// the same request components. Three components are signed for bodyless
// requests (method, authority, request-target) and six when a body is present
// (adding content-digest, content-type, content-length). Component order, the
// three-versus-six selection, and the trailing signature-parameters line are
// fixed; any deviation invalidates the signature.
//
// # Usage
//
//	signer, err := signing.NewSigner(privateKeyPEM, "my-key-id")
//	if err != nil {
//	    return err
//	}
//	if err := signer.Sign(req, body); err != nil {
//	    return err
//	}
//
// The signing key is a PEM-encoded ECDSA private key (PKCS#8 or SEC1);
// signatures are ECDSA over SHA-512.
//
// Every attempt is a fresh signed message: the nonce and created timestamp are
// generated per Sign call. Both are injectable for reproducible tests:
//
//	signer, _ := signing.NewSigner(pem, "key-1",
//	    signing.WithNonceFunc(func() string { return "fixed-nonce" }),
//	    signing.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
//	)
//
// Verify recomputes the signature over a caller-supplied base string with the
// corresponding public key and fails closed: any mismatch is an error, never a
// silent false.
package signing
