package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Type enumerates the error categories the API reports in the wire "type" field.
type Type string

const (
	TypeAuthenticationFailed    Type = "authentication_failed"
	TypeInsufficientPermissions Type = "insufficient_permissions"
	TypeRateLimitReached        Type = "rate_limit_reached"
	TypeInvalidAPIUsage         Type = "invalid_api_usage"
	TypeInvalidState            Type = "invalid_state"
	TypeValidationFailed        Type = "validation_failed"
	TypeInternal                Type = "internal_error"

	// TypeMalformedResponse is synthesized locally for bodies that could not
	// be decoded; it never appears on the wire.
	TypeMalformedResponse Type = "malformed_response"
)

const (
	// ReasonIdempotentCreationConflict marks an invalid_state error caused by
	// re-submitting a create under an already-used idempotency key.
	ReasonIdempotentCreationConflict = "idempotent_creation_conflict"

	// LinkConflictingResourceID is the relation under which an idempotent
	// creation conflict reports the already-created resource.
	LinkConflictingResourceID = "conflicting_resource_id"
)

// FieldError is a single entry of the structured "errors" list, carrying
// reason- and field-level detail for programmatic handling.
type FieldError struct {
	Reason         string            `json:"reason,omitempty"`
	Message        string            `json:"message,omitempty"`
	Field          string            `json:"field,omitempty"`
	RequestPointer string            `json:"request_pointer,omitempty"`
	Links          map[string]string `json:"links,omitempty"`
}

// APIError is the decoded, classified form of an API error response.
// It always unwraps to one of the package sentinel errors.
type APIError struct {
	Code             int
	Type             Type
	Message          string
	RequestID        string
	DocumentationURL string
	Errors           []FieldError

	// Response is the raw transport response the error was decoded from.
	// Its body has already been consumed; see RawBody.
	Response *http.Response

	// RawBody is the unmodified response body, preserved even when it could
	// not be decoded as JSON.
	RawBody []byte

	kind error
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status %d, request %s)", e.Type, e.Message, e.Code, e.RequestID)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.Code)
}

// Unwrap returns the sentinel kind so errors.Is matches the category.
func (e *APIError) Unwrap() error { return e.kind }

// wireEnvelope mirrors the JSON error payload shape.
type wireEnvelope struct {
	Error wireError `json:"error"`
}

type wireError struct {
	Code             int          `json:"code"`
	Type             string       `json:"type"`
	Message          string       `json:"message"`
	RequestID        string       `json:"request_id"`
	DocumentationURL string       `json:"documentation_url"`
	Errors           []FieldError `json:"errors"`
}

// Classify decodes an error response body and maps it to an *APIError.
// It never fails: undecodable bodies classify as ErrMalformedResponse with
// the raw body preserved. resp may be nil in tests.
func Classify(resp *http.Response, body []byte) *APIError {
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	var envelope wireEnvelope
	err := json.Unmarshal(body, &envelope)
	if err != nil || (envelope.Error.Type == "" && envelope.Error.Message == "") {
		return &APIError{
			Code:     statusCode,
			Type:     TypeMalformedResponse,
			Message:  ErrMalformedResponse.Error(),
			Response: resp,
			RawBody:  body,
			kind:     ErrMalformedResponse,
		}
	}

	wire := envelope.Error
	code := wire.Code
	if code == 0 {
		code = statusCode
	}

	errType := refineType(Type(wire.Type), statusCode)

	return &APIError{
		Code:             code,
		Type:             errType,
		Message:          wire.Message,
		RequestID:        wire.RequestID,
		DocumentationURL: wire.DocumentationURL,
		Errors:           wire.Errors,
		Response:         resp,
		RawBody:          body,
		kind:             kindOf(errType, statusCode),
	}
}

// refineType corrects the wire type when the status code implies a more
// specific category than the server declared.
func refineType(wireType Type, statusCode int) Type {
	switch statusCode {
	case http.StatusUnauthorized:
		return TypeAuthenticationFailed
	case http.StatusForbidden:
		return TypeInsufficientPermissions
	case http.StatusTooManyRequests:
		return TypeRateLimitReached
	}
	return wireType
}

func kindOf(errType Type, statusCode int) error {
	switch errType {
	case TypeAuthenticationFailed:
		return ErrAuthenticationFailed
	case TypeInsufficientPermissions:
		return ErrInsufficientPermissions
	case TypeRateLimitReached:
		return ErrRateLimitReached
	case TypeInvalidAPIUsage:
		return ErrInvalidAPIUsage
	case TypeInvalidState:
		return ErrInvalidState
	case TypeValidationFailed:
		return ErrValidationFailed
	case TypeInternal:
		return ErrInternal
	case TypeMalformedResponse:
		return ErrMalformedResponse
	}
	// Unknown wire types fall back on what the status code implies.
	if statusCode >= 500 {
		return ErrInternal
	}
	return ErrInvalidAPIUsage
}

// IsIdempotentCreationConflict reports whether err is an invalid_state error
// caused by an idempotent creation conflict.
func IsIdempotentCreationConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !errors.Is(apiErr, ErrInvalidState) {
		return false
	}
	for _, fe := range apiErr.Errors {
		if fe.Reason == ReasonIdempotentCreationConflict {
			return true
		}
	}
	return false
}

// ConflictingResourceID extracts the id of the resource that was already
// created under the same idempotency key. The second return is false when err
// is not an idempotent creation conflict or no conflicting resource link is
// present.
func ConflictingResourceID(err error) (string, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "", false
	}
	for _, fe := range apiErr.Errors {
		if fe.Reason != ReasonIdempotentCreationConflict {
			continue
		}
		if id, ok := fe.Links[LinkConflictingResourceID]; ok && id != "" {
			return id, true
		}
	}
	return "", false
}
