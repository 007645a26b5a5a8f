// Package apierror models the structured error payload returned by the
// payments API and classifies it into stable error kinds.
//
// The API reports failures as a JSON envelope:
//
//	{"error": {"code": 409, "type": "invalid_state", "message": "...",
//	           "request_id": "...", "documentation_url": "...",
//	           "errors": [{"reason": "...", "field": "...", "links": {...}}]}}
//
// Classify turns that envelope plus the HTTP status code into an *APIError.
// Every *APIError unwraps to exactly one of the package sentinel errors, so
// callers branch with errors.Is:
//
//	_, err := client.Execute(ctx, req, &payment)
//	switch {
//	case errors.Is(err, apierror.ErrRateLimitReached):
//	    // back off and retry later
//	case errors.Is(err, apierror.ErrValidationFailed):
//	    var apiErr *apierror.APIError
//	    errors.As(err, &apiErr)
//	    for _, fe := range apiErr.Errors {
//	        log.Printf("field %s: %s", fe.Field, fe.Message)
//	    }
//	}
//
// The wire type field is the primary discriminant. The HTTP status code
// refines it: 401 always classifies as authentication failure, 403 as
// insufficient permissions, and 429 as rate limiting, even when the server
// declares a coarser type like invalid_api_usage.
//
// Bodies that are not valid JSON (HTML error pages from proxies, truncated
// responses) classify as ErrMalformedResponse with the raw body preserved for
// inspection. Classification itself never fails.
package apierror
