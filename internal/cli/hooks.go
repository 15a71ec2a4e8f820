package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/react-native-community/vscode-react-native-directory/pkg/observability"
)

// logHooks traces HTTP calls and annotation refreshes at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h logHooks) OnRefreshStart(_ context.Context, uri string, deps int) {
	h.logger.Debug("refresh started", "uri", uri, "deps", deps)
}

func (h logHooks) OnRefreshComplete(_ context.Context, uri string, decorations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("refresh failed", "uri", uri, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("refresh complete", "uri", uri, "decorations", decorations, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnRefreshSuperseded(_ context.Context, uri string, token uint64) {
	h.logger.Debug("refresh superseded", "uri", uri, "token", token)
}

// registerHooks installs logHooks when debug logging is on.
func registerHooks(l *log.Logger) bool {
	if l.GetLevel() > log.DebugLevel {
		return false
	}
	h := logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetAnnotateHooks(h)
	return true
}
