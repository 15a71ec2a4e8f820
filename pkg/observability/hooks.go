// Package observability lets the embedding program observe annotation
// refreshes and outgoing HTTP calls without tying the libraries to a metrics
// backend.
//
// Hooks are registered once at startup and read by libraries on every event:
//
//	observability.SetAnnotateHooks(&myHooks{})
//	observability.Annotate().OnRefreshStart(ctx, uri, len(refs))
//
// Unregistered hooks are no-ops.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Annotate Hooks
// =============================================================================

// AnnotateHooks receives events from the annotation refresh controller.
type AnnotateHooks interface {
	// OnRefreshStart fires once a refresh has parsed its document and is
	// about to query the directory.
	OnRefreshStart(ctx context.Context, uri string, deps int)

	// OnRefreshComplete fires when a refresh painted its decorations or
	// failed. err is nil on success.
	OnRefreshComplete(ctx context.Context, uri string, decorations int, duration time.Duration, err error)

	// OnRefreshSuperseded fires when a refresh finished after a newer one
	// had started, and its results were discarded.
	OnRefreshSuperseded(ctx context.Context, uri string, token uint64)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure or cancellation.
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnnotateHooks is a no-op implementation of AnnotateHooks.
type NoopAnnotateHooks struct{}

func (NoopAnnotateHooks) OnRefreshStart(context.Context, string, int) {}
func (NoopAnnotateHooks) OnRefreshComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopAnnotateHooks) OnRefreshSuperseded(context.Context, string, uint64) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	annotateHooks AnnotateHooks = NoopAnnotateHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetAnnotateHooks registers custom refresh hooks. Nil is ignored.
func SetAnnotateHooks(h AnnotateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		annotateHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Annotate returns the registered refresh hooks.
func Annotate() AnnotateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return annotateHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	annotateHooks = NoopAnnotateHooks{}
	httpHooks = NoopHTTPHooks{}
}
