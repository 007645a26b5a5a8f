package client_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bankpay/pkg/client"
	"github.com/dmitrymomot/bankpay/pkg/signing"
)

// generateSigningKey returns PEM encodings of a fresh ECDSA key pair.
func generateSigningKey(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)

	privDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return privatePEM, publicPEM
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		token   string
		wantErr error
	}{
		{name: "valid", baseURL: "https://api.bankpay.dev", token: "tok"},
		{name: "http allowed", baseURL: "http://localhost:8080", token: "tok"},
		{name: "empty base url", baseURL: "", token: "tok", wantErr: client.ErrInvalidBaseURL},
		{name: "unsupported scheme", baseURL: "ftp://api.bankpay.dev", token: "tok", wantErr: client.ErrInvalidBaseURL},
		{name: "missing host", baseURL: "https://", token: "tok", wantErr: client.ErrInvalidBaseURL},
		{name: "missing token", baseURL: "https://api.bankpay.dev", token: "", wantErr: client.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := client.New(tt.baseURL, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestNew_TrailingSlashTrimmed(t *testing.T) {
	t.Parallel()

	c, err := client.New("https://api.bankpay.dev/", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://api.bankpay.dev", c.BaseURL())
}

func TestMust(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		client.Must("https://api.bankpay.dev", "tok")
	})
	assert.Panics(t, func() {
		client.Must("", "")
	})
}

func TestExecute_SignedRequestCarriesSignatureHeaders(t *testing.T) {
	t.Parallel()

	privatePEM, _ := generateSigningKey(t)
	signer, err := signing.NewSigner(privatePEM, "key-1")
	require.NoError(t, err)

	ft := &fakeTransport{responses: []fakeResult{jsonResponse(201, `{}`)}}
	c := newTestClient(t, ft, client.WithSigner(signer))

	_, err = c.Execute(context.Background(), client.Request{
		Method:   http.MethodPost,
		Path:     "/payments",
		Body:     map[string]any{"amount": 1},
		Envelope: "payments",
	}, nil)
	require.NoError(t, err)

	h := ft.recorded()[0].header
	assert.NotEmpty(t, h.Get(signing.HeaderSignature))
	assert.NotEmpty(t, h.Get(signing.HeaderSignatureInput))
	assert.NotEmpty(t, h.Get(signing.HeaderContentDigest))
	assert.Contains(t, h.Get(signing.HeaderSignatureInput), `keyid="key-1"`)
}

func TestExecute_UnsignedWhenNoSignerConfigured(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []fakeResult{jsonResponse(200, `{}`)}}
	c := newTestClient(t, ft)

	_, err := c.Execute(context.Background(), client.Request{
		Method: http.MethodGet,
		Path:   "/payments",
	}, nil)
	require.NoError(t, err)

	h := ft.recorded()[0].header
	assert.Empty(t, h.Get(signing.HeaderSignature))
	assert.Empty(t, h.Get(signing.HeaderSignatureInput))
}
