package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response wraps a successful API response. The body has been fully read;
// HTTPResponse is attached for header and status inspection.
type Response struct {
	// HTTPResponse is the raw transport response. Its body is already
	// consumed; use Body instead.
	HTTPResponse *http.Response

	// Body is the raw response body.
	Body []byte
}

// StatusCode returns the HTTP status code, or 0 when no transport response
// is attached.
func (r *Response) StatusCode() int {
	if r == nil || r.HTTPResponse == nil {
		return 0
	}
	return r.HTTPResponse.StatusCode
}

// Decode unmarshals the body into v, unwrapping the payload envelope when
// one is declared. Empty and null bodies leave v at its zero value rather
// than failing, so callers always get a usable default response value.
func (r *Response) Decode(envelope string, v any) error {
	if v == nil {
		return nil
	}

	body := bytes.TrimSpace(r.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}

	if envelope == "" {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
		return nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	raw, ok := wrapped[envelope]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: envelope %q: %w", ErrDecodeResponse, envelope, err)
	}
	return nil
}
