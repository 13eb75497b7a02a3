// Package api provides the HTTP client for the BuildBoard backend.
//
// # Endpoints
//
//   - POST /early-start/signup: request a one-time code for an email
//   - POST /early-start/verify: confirm the code (always sent uppercased)
//   - GET /early-start/count: total and verified signup counts
//   - GET /admin/early-start: admin signup listing
//   - GET /health: backend health
//
// All requests send and accept application/json and carry an X-Request-ID.
//
// # Errors
//
// Every failure, whether transport, decoding or a non-2xx response, is
// returned as *APIError. For backend errors Message is the server's "error"
// field, or "HTTP error! status: N" when the body carries none, so it can be
// shown next to the active form as-is.
//
// # Development Mode
//
// A development backend includes the one-time code in the signup response.
// With WithDevMode(true) the client writes that code to its logger; otherwise
// the field is dropped before the response is returned.
package api
