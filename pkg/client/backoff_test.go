package client_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bankpay/pkg/client"
)

func TestFixedBackoff(t *testing.T) {
	t.Parallel()

	b := client.FixedBackoff{Interval: 250 * time.Millisecond}

	assert.Equal(t, time.Duration(0), b.NextInterval(0))
	assert.Equal(t, 250*time.Millisecond, b.NextInterval(1))
	assert.Equal(t, 250*time.Millisecond, b.NextInterval(5))
}

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	t.Run("deterministic without jitter", func(t *testing.T) {
		t.Parallel()

		b := client.ExponentialBackoff{
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
		}

		assert.Equal(t, time.Second, b.NextInterval(1))
		assert.Equal(t, 2*time.Second, b.NextInterval(2))
		assert.Equal(t, 4*time.Second, b.NextInterval(3))
		assert.Equal(t, 8*time.Second, b.NextInterval(4))
		assert.Equal(t, 10*time.Second, b.NextInterval(5), "capped at MaxInterval")
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		t.Parallel()

		b := client.ExponentialBackoff{
			InitialInterval: time.Second,
			MaxInterval:     time.Minute,
			Multiplier:      2,
			JitterFactor:    0.2,
		}

		for range 50 {
			d := b.NextInterval(3)
			assert.GreaterOrEqual(t, d, time.Duration(float64(4*time.Second)*0.8))
			assert.LessOrEqual(t, d, time.Duration(float64(4*time.Second)*1.2))
		}
	})

	t.Run("zero attempt yields zero delay", func(t *testing.T) {
		t.Parallel()

		b := client.ExponentialBackoff{}
		assert.Equal(t, time.Duration(0), b.NextInterval(0))
	})
}
