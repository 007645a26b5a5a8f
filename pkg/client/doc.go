// Package client implements the request execution engine for the payments
// API: it turns one logical API call into zero or more HTTP attempts, keeping
// the idempotency key stable across retries, resolving idempotent creation
// conflicts, classifying error responses, and optionally signing each attempt
// with HTTP message signatures.
//
// # Basic Usage
//
//	c, err := client.New("https://api.bankpay.dev", token)
//	if err != nil {
//	    return err
//	}
//
//	var payment Payment
//	_, err = c.Execute(ctx, client.Request{
//	    Method:                 http.MethodPost,
//	    Path:                   "/payments",
//	    Body:                   createParams,
//	    Envelope:               "payments",
//	    RequiresIdempotencyKey: true,
//	    ConflictResolver: func(ctx context.Context, id string) (*client.Response, error) {
//	        return c.Execute(ctx, client.Request{
//	            Method: http.MethodGet,
//	            Path:   "/payments/:identity",
//	            PathParams: []string{id},
//	        }, nil)
//	    },
//	}, &payment)
//
// # Retry Behavior
//
// Timeouts and connection-level failures (DNS, TLS, refused or dropped
// connections) are retried up to the configured bound with the same
// idempotency key; each attempt is freshly built and freshly signed. The
// final attempt's transport error propagates unwrapped. API errors are never
// retried: they classify into the pkg/apierror taxonomy and return
// immediately, except an idempotent creation conflict, which is resolved
// transparently by fetching the already-created resource unless the caller
// opts into strict conflict reporting with WithStrictConflicts.
//
// Context cancellation is terminal: an elapsed caller deadline abandons the
// in-flight attempt and no further retries happen.
//
// # Query Encoding
//
// List and lookup parameters are declared as an ordered QueryParams list and
// rendered with bracket notation for nested objects:
//
//	client.QueryParams{
//	    client.Param("limit", 10),
//	    client.Param("include_cancelled", false),
//	    client.NestedParam("created_at", client.Param("gte", "2024-01-01")),
//	}
//	// limit=10&include_cancelled=false&created_at[gte]=2024-01-01
//
// The Client is immutable after New and safe for concurrent use; per-call
// overrides are supplied as RequestOption values on Execute.
package client
