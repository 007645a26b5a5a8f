package signing

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Headers set by Sign. The names are fixed by the API's verification side.
const (
	HeaderSignature      = "Gc-Signature"
	HeaderSignatureInput = "Gc-Signature-Input"
	HeaderContentDigest  = "Content-Digest"
)

// signatureLabel identifies the signature within the header values, matching
// what the server expects for single-signature requests.
const signatureLabel = "sig-1"

// Signer produces HTTP message signatures with a PEM-encoded ECDSA private key.
// Safe for concurrent use; construct once via NewSigner.
type Signer struct {
	key   *ecdsa.PrivateKey
	keyID string
	nonce func() string
	now   func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithNonceFunc overrides nonce generation. Production signers generate a
// fresh random nonce per signature; fix it only in tests where reproducible
// signature bases are needed.
func WithNonceFunc(fn func() string) Option {
	return func(s *Signer) {
		if fn != nil {
			s.nonce = fn
		}
	}
}

// WithClock overrides the clock used for the created timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner creates a request signer from a PEM-encoded ECDSA private key
// (PKCS#8 or SEC1) and the key id registered with the API.
func NewSigner(privateKeyPEM []byte, keyID string, opts ...Option) (*Signer, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	key, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	s := &Signer{
		key:   key,
		keyID: keyID,
		nonce: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// KeyID returns the key id the signer was constructed with.
func (s *Signer) KeyID() string { return s.keyID }

// Sign computes the signature over the request's canonical base and sets the
// Gc-Signature, Gc-Signature-Input and (body present) Content-Digest headers.
// body must be the exact bytes the request will send; pass nil for bodyless
// requests. Each call is a fresh signed message with its own nonce and
// created timestamp.
func (s *Signer) Sign(req *http.Request, body []byte) error {
	in := BaseInput{
		Method:      req.Method,
		Authority:   authority(req),
		Target:      req.URL.RequestURI(),
		ContentType: req.Header.Get("Content-Type"),
		Body:        body,
		KeyID:       s.keyID,
		Created:     s.now().Unix(),
		Nonce:       s.nonce(),
	}

	base, params := SignatureBase(in)

	digest := sha512.Sum512([]byte(base))
	sig, err := ecdsa.SignASN1(rand.Reader, s.key, digest[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	if len(body) > 0 {
		req.Header.Set(HeaderContentDigest, ContentDigest(body))
	}
	req.Header.Set(HeaderSignatureInput, signatureLabel+"="+params)
	req.Header.Set(HeaderSignature, signatureLabel+"=:"+base64.StdEncoding.EncodeToString(sig)+":")

	return nil
}

// BaseInput carries the request components a signature covers.
type BaseInput struct {
	Method      string
	Authority   string
	Target      string
	ContentType string
	Body        []byte
	KeyID       string
	Created     int64
	Nonce       string
}

// SignatureBase builds the canonical string that is signed, plus the
// signature-parameters value carried in the Gc-Signature-Input header.
//
// The base lists method, authority and request-target, then, only when a body
// is present, content-digest, content-type and content-length, and closes with
// the signature-parameters line. The verifier rebuilds the identical string,
// so ordering, casing and the three-versus-six component selection must not
// change.
func SignatureBase(in BaseInput) (base, params string) {
	components := []string{"@method", "@authority", "@request-target"}
	if len(in.Body) > 0 {
		components = append(components, "content-digest", "content-type", "content-length")
	}

	var quoted []string
	for _, c := range components {
		quoted = append(quoted, `"`+c+`"`)
	}
	params = fmt.Sprintf(`(%s);keyid="%s";created=%d;nonce="%s"`,
		strings.Join(quoted, " "), in.KeyID, in.Created, in.Nonce)

	var b strings.Builder
	fmt.Fprintf(&b, "\"@method\": %s\n", strings.ToUpper(in.Method))
	fmt.Fprintf(&b, "\"@authority\": %s\n", in.Authority)
	fmt.Fprintf(&b, "\"@request-target\": %s\n", in.Target)
	if len(in.Body) > 0 {
		fmt.Fprintf(&b, "\"content-digest\": %s\n", ContentDigest(in.Body))
		fmt.Fprintf(&b, "\"content-type\": %s\n", in.ContentType)
		fmt.Fprintf(&b, "\"content-length\": %d\n", len(in.Body))
	}
	fmt.Fprintf(&b, "\"@signature-params\": %s", params)

	return b.String(), params
}

// ContentDigest computes the body digest header value: the base64-encoded
// SHA-256 of the raw body bytes, wrapped as sha256=:<base64>:.
func ContentDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return "sha256=:" + base64.StdEncoding.EncodeToString(sum[:]) + ":"
}

// Verify checks a base64-encoded ECDSA signature against a signature base
// using a PEM-encoded public key. It fails closed: any mismatch or decoding
// problem is an error.
func Verify(publicKeyPEM []byte, signature, signatureBase string) error {
	key, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return err
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignatureEncoding, err)
	}

	digest := sha512.Sum512([]byte(signatureBase))
	if !ecdsa.VerifyASN1(key, digest[:], sig) {
		return ErrSignatureMismatch
	}
	return nil
}

// ExtractSignature strips the sig-1=:...: wrapping from a Gc-Signature header
// value, returning the inner base64 signature.
func ExtractSignature(header string) (string, bool) {
	prefix := signatureLabel + "=:"
	if !strings.HasPrefix(header, prefix) || !strings.HasSuffix(header, ":") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(header, prefix), ":")
	if inner == "" {
		return "", false
	}
	return inner, true
}

func authority(req *http.Request) string {
	if req.URL != nil && req.URL.Host != "" {
		return req.URL.Host
	}
	return req.Host
}

func parsePrivateKey(pemBytes []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPrivateKey)
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: not a SEC1 or PKCS#8 key: %w", ErrInvalidPrivateKey, err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected an ECDSA key, got %T", ErrInvalidPrivateKey, parsed)
	}
	return key, nil
}

func parsePublicKey(pemBytes []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPublicKey)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	key, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected an ECDSA key, got %T", ErrInvalidPublicKey, parsed)
	}
	return key, nil
}
