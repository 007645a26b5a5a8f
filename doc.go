// Package bankpay is a Go client for the bankpay payments REST API.
//
// The package wires the building blocks together from configuration:
//
//	cfg := bankpay.Config{
//	    AccessToken: token,
//	    BaseURL:     "https://api-sandbox.bankpay.dev",
//	}
//	c, err := bankpay.New(cfg)
//
// or straight from the environment (BANKPAY_* variables, optionally via a
// .env file):
//
//	c, err := bankpay.NewFromEnv()
//
// The returned *client.Client executes logical API calls with transparent
// retry of transient transport failures, stable idempotency keys, automatic
// resolution of idempotent creation conflicts, typed API errors
// (pkg/apierror), and optional HTTP message signing (pkg/signing). Inbound
// webhook payloads are verified and decoded with pkg/webhook.
package bankpay
