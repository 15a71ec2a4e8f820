package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and server errors.
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("invalid response body")

	// ErrBreakerOpen is returned without contacting the host while its
	// circuit breaker is open.
	ErrBreakerOpen = errors.New("circuit breaker open")
)

// StatusError reports a non-successful HTTP status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsCanceled reports whether err stems from context cancellation. Expired
// deadlines and client timeouts are transport failures, not cancellations.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// canceled reports whether the caller gave up on the request.
func canceled(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.Canceled) || IsCanceled(err)
}

// checkStatus maps an HTTP status to the package's error taxonomy.
func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	case code >= 500, code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, &StatusError{StatusCode: code, URL: url})}
	default:
		return &StatusError{StatusCode: code, URL: url}
	}
}
