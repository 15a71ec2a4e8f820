package lsp

import (
	"slices"
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/react-native-community/vscode-react-native-directory/pkg/annotate"
)

const diagnosticSource = "React Native Directory"

// display renders decorations as zero-width diagnostics and keeps their
// tooltips for hover requests. It also forwards status messages to the
// client. It implements annotate.Sink and annotate.StatusReporter.
type display struct {
	mu        sync.Mutex
	notify    glsp.NotifyFunc
	byURI     map[string][]annotate.Decoration
	published map[string]bool
}

func newDisplay() *display {
	return &display{
		byURI:     make(map[string][]annotate.Decoration),
		published: make(map[string]bool),
	}
}

// attach sets the function used to reach the client. Until it is called,
// decorations are recorded but not sent.
func (d *display) attach(notify glsp.NotifyFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notify = notify
}

func (d *display) SetDecorations(uri string, decorations []annotate.Decoration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(decorations) == 0 {
		delete(d.byURI, uri)
		if !d.published[uri] {
			return
		}
		delete(d.published, uri)
	} else {
		d.byURI[uri] = slices.Clone(decorations)
		d.published[uri] = true
	}
	d.publish(uri, decorations)
}

// clearAll withdraws every published decoration.
func (d *display) clearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for uri := range d.published {
		d.publish(uri, nil)
	}
	clear(d.byURI)
	clear(d.published)
}

func (d *display) publish(uri string, decorations []annotate.Decoration) {
	if d.notify == nil {
		return
	}
	d.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toDiagnostics(decorations),
	})
}

// hover returns the tooltip of the decoration on pos's line.
func (d *display) hover(uri string, pos protocol.Position) *protocol.Hover {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dec := range d.byURI[uri] {
		if protocol.UInteger(dec.Anchor.Line) != pos.Line {
			continue
		}
		return &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: dec.Hover},
			Range: &protocol.Range{
				Start: protocol.Position{Line: pos.Line},
				End:   anchorPosition(dec),
			},
		}
	}
	return nil
}

// decorations returns what is currently shown for uri.
func (d *display) decorations(uri string) []annotate.Decoration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.byURI[uri])
}

// Info logs msg in the client's output channel. LSP has no timed status
// bar, so the duration is dropped.
func (d *display) Info(msg string, _ time.Duration) {
	d.message(protocol.ServerWindowLogMessage, protocol.LogMessageParams{Type: protocol.MessageTypeInfo, Message: msg})
}

// Warn pops msg up as a warning.
func (d *display) Warn(msg string, _ time.Duration) {
	d.message(protocol.ServerWindowShowMessage, protocol.ShowMessageParams{Type: protocol.MessageTypeWarning, Message: msg})
}

func (d *display) message(method string, params any) {
	d.mu.Lock()
	notify := d.notify
	d.mu.Unlock()
	if notify != nil {
		notify(method, params)
	}
}

func toDiagnostics(decorations []annotate.Decoration) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(decorations))
	source := diagnosticSource
	for _, dec := range decorations {
		severity := protocol.DiagnosticSeverityInformation
		if dec.Unmaintained {
			severity = protocol.DiagnosticSeverityWarning
		}
		at := anchorPosition(dec)
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: at, End: at},
			Severity: &severity,
			Source:   &source,
			Message:  dec.Label,
		})
	}
	return out
}

func anchorPosition(dec annotate.Decoration) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(dec.Anchor.Line),
		Character: protocol.UInteger(dec.Anchor.Character),
	}
}
