package lsp

import (
	"testing"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/react-native-community/vscode-react-native-directory/pkg/annotate"
	"github.com/react-native-community/vscode-react-native-directory/pkg/manifest"
)

type notification struct {
	method string
	params any
}

type recorder struct{ ch chan notification }

func newRecorder() *recorder { return &recorder{ch: make(chan notification, 64)} }

func (r *recorder) notify(method string, params any) {
	r.ch <- notification{method: method, params: params}
}

// next returns the next notification for method, skipping others.
func (r *recorder) next(t *testing.T, method string) notification {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case n := <-r.ch:
			if n.method == method {
				return n
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", method)
		}
	}
}

func (r *recorder) diagnostics(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	n := r.next(t, protocol.ServerTextDocumentPublishDiagnostics)
	return n.params.(protocol.PublishDiagnosticsParams)
}

func (r *recorder) expectNone(t *testing.T, method string, d time.Duration) {
	t.Helper()
	timeout := time.After(d)
	for {
		select {
		case n := <-r.ch:
			if n.method == method {
				t.Fatalf("unexpected %s: %+v", method, n.params)
			}
		case <-timeout:
			return
		}
	}
}

var sampleDecorations = []annotate.Decoration{
	{Name: "react", Anchor: manifest.Position{Line: 2, Character: 21}, Label: "★ 230K", Hover: "📦 **react**"},
	{Name: "left-pad", Anchor: manifest.Position{Line: 3, Character: 23}, Label: "★ 1.2K • Unmaintained", Hover: "📦 **left-pad**", Unmaintained: true},
}

func TestDisplayPublishesDiagnostics(t *testing.T) {
	rec := newRecorder()
	d := newDisplay()
	d.attach(rec.notify)

	d.SetDecorations("file:///p/package.json", sampleDecorations)
	got := rec.diagnostics(t)
	if got.URI != "file:///p/package.json" || len(got.Diagnostics) != 2 {
		t.Fatalf("published = %+v", got)
	}

	first, second := got.Diagnostics[0], got.Diagnostics[1]
	if first.Message != "★ 230K" || *first.Source != "React Native Directory" {
		t.Errorf("first = %+v", first)
	}
	if first.Range.Start != first.Range.End || first.Range.Start != (protocol.Position{Line: 2, Character: 21}) {
		t.Errorf("first range = %+v, want zero-width at 2:21", first.Range)
	}
	if *first.Severity != protocol.DiagnosticSeverityInformation {
		t.Errorf("first severity = %v", *first.Severity)
	}
	if *second.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("unmaintained severity = %v, want warning", *second.Severity)
	}

	d.SetDecorations("file:///p/package.json", nil)
	if cleared := rec.diagnostics(t); len(cleared.Diagnostics) != 0 || cleared.Diagnostics == nil {
		t.Errorf("clear = %+v, want an empty list", cleared)
	}
}

func TestDisplaySkipsRedundantClears(t *testing.T) {
	rec := newRecorder()
	d := newDisplay()
	d.attach(rec.notify)

	d.SetDecorations("file:///p/index.ts", nil)
	rec.expectNone(t, protocol.ServerTextDocumentPublishDiagnostics, 20*time.Millisecond)
}

func TestDisplayHover(t *testing.T) {
	d := newDisplay()
	d.SetDecorations("file:///p/package.json", sampleDecorations)

	h := d.hover("file:///p/package.json", protocol.Position{Line: 3, Character: 6})
	if h == nil {
		t.Fatal("hover() = nil on a decorated line")
	}
	content := h.Contents.(protocol.MarkupContent)
	if content.Kind != protocol.MarkupKindMarkdown || content.Value != "📦 **left-pad**" {
		t.Errorf("contents = %+v", content)
	}
	if h.Range.End != (protocol.Position{Line: 3, Character: 23}) {
		t.Errorf("range = %+v", h.Range)
	}

	if h := d.hover("file:///p/package.json", protocol.Position{Line: 0}); h != nil {
		t.Errorf("hover on undecorated line = %+v", h)
	}
	if h := d.hover("file:///other", protocol.Position{Line: 3}); h != nil {
		t.Errorf("hover on other document = %+v", h)
	}
}

func TestDisplayClearAll(t *testing.T) {
	rec := newRecorder()
	d := newDisplay()
	d.attach(rec.notify)
	d.SetDecorations("file:///a/package.json", sampleDecorations)
	rec.diagnostics(t)

	d.clearAll()
	if got := rec.diagnostics(t); got.URI != "file:///a/package.json" || len(got.Diagnostics) != 0 {
		t.Errorf("clearAll published %+v", got)
	}
	if len(d.decorations("file:///a/package.json")) != 0 {
		t.Error("decorations kept after clearAll")
	}
}

func TestDisplayStatus(t *testing.T) {
	rec := newRecorder()
	d := newDisplay()
	d.Info("dropped before attach", time.Second)
	d.attach(rec.notify)

	d.Info("React Native Directory: annotating 2 dependencies…", 2500*time.Millisecond)
	info := rec.next(t, protocol.ServerWindowLogMessage).params.(protocol.LogMessageParams)
	if info.Type != protocol.MessageTypeInfo || info.Message != "React Native Directory: annotating 2 dependencies…" {
		t.Errorf("info = %+v", info)
	}

	d.Warn("React Native Directory: failed to load annotations", 2500*time.Millisecond)
	warn := rec.next(t, protocol.ServerWindowShowMessage).params.(protocol.ShowMessageParams)
	if warn.Type != protocol.MessageTypeWarning {
		t.Errorf("warn = %+v", warn)
	}
}
