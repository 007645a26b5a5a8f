package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bankpay/pkg/config"
)

type testConfig struct {
	Token   string        `env:"TEST_CFG_TOKEN,required"`
	BaseURL string        `env:"TEST_CFG_BASE_URL" envDefault:"https://api.bankpay.dev"`
	Retries int           `env:"TEST_CFG_RETRIES" envDefault:"3"`
	Delay   time.Duration `env:"TEST_CFG_DELAY" envDefault:"500ms"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_CFG_TOKEN", "secret")
	t.Setenv("TEST_CFG_RETRIES", "5")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "https://api.bankpay.dev", cfg.BaseURL, "default applied")
	assert.Equal(t, 5, cfg.Retries)
	assert.Equal(t, 500*time.Millisecond, cfg.Delay)
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers restoration; unsetting leaves the var truly absent
	// so the required tag fails.
	t.Setenv("TEST_CFG_TOKEN", "placeholder")
	require.NoError(t, os.Unsetenv("TEST_CFG_TOKEN"))

	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	t.Setenv("TEST_CFG_TOKEN", "secret")

	assert.NotPanics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("TEST_CFG_TOKEN", "placeholder")
	require.NoError(t, os.Unsetenv("TEST_CFG_TOKEN"))

	assert.Panics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}
