// Package httputil provides the HTTP plumbing shared by the directory and npm
// clients.
//
// # Overview
//
//   - [Client]: JSON GET helper with default headers, status mapping and
//     observability hooks
//   - [NewHTTPClient]: an *http.Client whose transport resolves hosts through
//     a shared DNS cache
//   - [Breakers]: per-host circuit breakers that fail fast while an upstream
//     is down
//   - [Retry]: bounded retries with exponential backoff for interactive calls
//
// # Errors
//
// Requests fail with [ErrNotFound] for 404 responses, a [*StatusError] for any
// other non-2xx status, [ErrNetwork] for transport failures, [ErrDecode] for
// bodies that are not the expected JSON and [ErrBreakerOpen] while the host's
// breaker is open. Context cancellation is returned unchanged and never
// counts against a breaker.
//
// Transient failures (transport errors, 5xx, 429) are wrapped in
// [RetryableError], so callers that opt into [Retry] only repeat those.
package httputil
