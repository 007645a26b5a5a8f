package bankpay

import (
	"time"

	"github.com/dmitrymomot/bankpay/pkg/client"
	"github.com/dmitrymomot/bankpay/pkg/config"
	"github.com/dmitrymomot/bankpay/pkg/signing"
)

// Config holds everything needed to construct a client. SigningPrivateKey
// and SigningKeyID are optional: without them requests go out unsigned,
// which the API accepts for non-restricted endpoints.
type Config struct {
	AccessToken       string        `env:"BANKPAY_ACCESS_TOKEN,required"`
	BaseURL           string        `env:"BANKPAY_BASE_URL" envDefault:"https://api.bankpay.dev"`
	SigningPrivateKey string        `env:"BANKPAY_SIGNING_PRIVATE_KEY"`
	SigningKeyID      string        `env:"BANKPAY_SIGNING_KEY_ID"`
	Retries           int           `env:"BANKPAY_RETRIES" envDefault:"3"`
	RetryDelay        time.Duration `env:"BANKPAY_RETRY_DELAY" envDefault:"500ms"`
}

// New builds a client from the given configuration. Extra options are
// applied after the configuration-derived ones, so they take precedence.
func New(cfg Config, opts ...client.Option) (*client.Client, error) {
	var base []client.Option
	// Zero values mean "keep the client defaults" so a hand-built Config
	// without env defaults behaves the same as an env-loaded one.
	if cfg.Retries > 0 {
		base = append(base, client.WithRetries(cfg.Retries))
	}
	if cfg.RetryDelay > 0 {
		base = append(base, client.WithRetryDelay(cfg.RetryDelay))
	}

	if cfg.SigningPrivateKey != "" {
		signer, err := signing.NewSigner([]byte(cfg.SigningPrivateKey), cfg.SigningKeyID)
		if err != nil {
			return nil, err
		}
		base = append(base, client.WithSigner(signer))
	}

	return client.New(cfg.BaseURL, cfg.AccessToken, append(base, opts...)...)
}

// NewFromEnv builds a client from BANKPAY_* environment variables,
// loading a .env file first if one is present.
func NewFromEnv(opts ...client.Option) (*client.Client, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}
