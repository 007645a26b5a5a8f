package webhook_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bankpay/pkg/webhook"
)

const twoEventBody = `{"events":[
	{"id":"EV001","created_at":"2024-03-01T12:00:00Z","resource_type":"payments","action":"confirmed",
	 "links":{"payment":"PM123"},"details":{"origin":"bank","cause":"payment_confirmed"},"metadata":{"order":"42"}},
	{"id":"EV002","created_at":"2024-03-01T12:00:05Z","resource_type":"mandates","action":"created",
	 "links":{"mandate":"MD456"}}]}`

func TestParse(t *testing.T) {
	t.Parallel()

	secret := "webhook-secret"
	body := []byte(twoEventBody)
	signature := webhook.Sign(secret, body)

	events, err := webhook.Parse(body, secret, signature)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Order must follow the events array.
	assert.Equal(t, "EV001", events[0].ID)
	assert.Equal(t, "payments", events[0].ResourceType)
	assert.Equal(t, "confirmed", events[0].Action)
	assert.Equal(t, "PM123", events[0].Links["payment"])
	assert.Equal(t, "bank", events[0].Details["origin"])
	assert.Equal(t, "42", events[0].Metadata["order"])
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), events[0].CreatedAt)

	assert.Equal(t, "EV002", events[1].ID)
	assert.Equal(t, "mandates", events[1].ResourceType)
}

func TestParse_SignatureMismatch(t *testing.T) {
	t.Parallel()

	secret := "webhook-secret"
	body := []byte(twoEventBody)
	signature := webhook.Sign(secret, body)

	tests := []struct {
		name      string
		body      []byte
		secret    string
		signature string
		wantErr   error
	}{
		{
			name:      "single character mutated in signature",
			body:      body,
			secret:    secret,
			signature: mutateFirstChar(signature),
			wantErr:   webhook.ErrInvalidSignature,
		},
		{
			name:      "wrong secret",
			body:      body,
			secret:    "other-secret",
			signature: signature,
			wantErr:   webhook.ErrInvalidSignature,
		},
		{
			name:      "body tampered after signing",
			body:      []byte(strings.Replace(twoEventBody, "PM123", "PM999", 1)),
			secret:    secret,
			signature: signature,
			wantErr:   webhook.ErrInvalidSignature,
		},
		{
			name:      "empty secret",
			body:      body,
			secret:    "",
			signature: signature,
			wantErr:   webhook.ErrMissingSecret,
		},
		{
			name:      "empty signature",
			body:      body,
			secret:    secret,
			signature: "",
			wantErr:   webhook.ErrMissingSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events, err := webhook.Parse(tt.body, tt.secret, tt.signature)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, events, "unverified payloads must never yield events")
		})
	}
}

func TestParse_InvalidPayloadAfterVerification(t *testing.T) {
	t.Parallel()

	secret := "webhook-secret"
	body := []byte(`not json at all`)
	signature := webhook.Sign(secret, body)

	_, err := webhook.Parse(body, secret, signature)
	assert.ErrorIs(t, err, webhook.ErrInvalidPayload)
}

func TestParse_EmptyEvents(t *testing.T) {
	t.Parallel()

	secret := "webhook-secret"
	body := []byte(`{"events":[]}`)

	events, err := webhook.Parse(body, secret, webhook.Sign(secret, body))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	secret := "webhook-secret"
	body := []byte(twoEventBody)

	r := httptest.NewRequest("POST", "/webhooks", strings.NewReader(string(body)))
	r.Header.Set(webhook.SignatureHeader, webhook.Sign(secret, body))

	events, err := webhook.ParseRequest(r, secret)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestParseRequest_MissingHeader(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/webhooks", strings.NewReader(`{"events":[]}`))

	_, err := webhook.ParseRequest(r, "secret")
	assert.ErrorIs(t, err, webhook.ErrMissingSignature)
}

// mutateFirstChar flips the first hex character of a signature.
func mutateFirstChar(s string) string {
	replacement := byte('0')
	if s[0] == '0' {
		replacement = '1'
	}
	return string(replacement) + s[1:]
}
