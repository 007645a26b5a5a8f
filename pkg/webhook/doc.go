// Package webhook verifies and decodes inbound webhook payloads from the
// payments API.
//
// The API delivers events as a JSON body with an HMAC-SHA256 signature of the
// raw body carried in the Webhook-Signature request header:
//
//	{"events": [{"id": "EV123", "created_at": "...", "resource_type": "payments",
//	             "action": "confirmed", "links": {"payment": "PM123"}, ...}]}
//
// Parse verifies the signature before any JSON decoding happens. An
// unverified payload never yields parsed events:
//
//	events, err := webhook.Parse(body, secret, r.Header.Get("Webhook-Signature"))
//	if errors.Is(err, webhook.ErrInvalidSignature) {
//	    w.WriteHeader(http.StatusBadRequest) // signature mismatch
//	    return
//	}
//
// ParseRequest is a convenience wrapper for HTTP handlers that reads the body
// and signature header from an *http.Request.
//
// The signature is the lower-case hex encoding of HMAC-SHA256(secret, body)
// and is compared in constant time.
package webhook
