package bankpay_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bankpay"
	"github.com/dmitrymomot/bankpay/pkg/client"
	"github.com/dmitrymomot/bankpay/pkg/signing"
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("minimal config", func(t *testing.T) {
		t.Parallel()

		c, err := bankpay.New(bankpay.Config{
			AccessToken: "tok",
			BaseURL:     "https://api-sandbox.bankpay.dev",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://api-sandbox.bankpay.dev", c.BaseURL())
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		_, err := bankpay.New(bankpay.Config{BaseURL: "https://api.bankpay.dev"})
		assert.ErrorIs(t, err, client.ErrMissingToken)
	})

	t.Run("signing configured", func(t *testing.T) {
		t.Parallel()

		_, err := bankpay.New(bankpay.Config{
			AccessToken:       "tok",
			BaseURL:           "https://api.bankpay.dev",
			SigningPrivateKey: testPrivateKeyPEM(t),
			SigningKeyID:      "key-1",
		})
		require.NoError(t, err)
	})

	t.Run("signing key without key id fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := bankpay.New(bankpay.Config{
			AccessToken:       "tok",
			BaseURL:           "https://api.bankpay.dev",
			SigningPrivateKey: testPrivateKeyPEM(t),
		})
		assert.ErrorIs(t, err, signing.ErrMissingKeyID)
	})

	t.Run("malformed signing key fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := bankpay.New(bankpay.Config{
			AccessToken:       "tok",
			BaseURL:           "https://api.bankpay.dev",
			SigningPrivateKey: "not a pem key",
			SigningKeyID:      "key-1",
		})
		assert.ErrorIs(t, err, signing.ErrInvalidPrivateKey)
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("BANKPAY_ACCESS_TOKEN", "env-token")
	t.Setenv("BANKPAY_BASE_URL", "https://api-sandbox.bankpay.dev")

	c, err := bankpay.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://api-sandbox.bankpay.dev", c.BaseURL())
}
