// Package client contains the transport side of the authentication client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     three backend calls: Login, Register and VerifyEmail.
//  2. A concrete JSON/HTTP implementation (see HTTPClient) that POSTs to
//     /Auth/login, /Auth/register and /Auth/verify-email under a base URL,
//     tags each call with an X-Request-ID and decodes the common
//     {status, message, data} envelope.
//
// # Success convention
//
// A call succeeded only when the HTTP status is 200 and the body status is 1
// (see Envelope.OK). Other 2xx answers are returned as envelopes so the
// caller can surface the backend message.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnexpectedStatus, ErrMalformedResponse.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
