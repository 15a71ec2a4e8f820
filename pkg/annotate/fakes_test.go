package annotate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
)

type fakeDoc struct {
	uri, path, lang, text string
}

func (d *fakeDoc) URI() string        { return d.uri }
func (d *fakeDoc) Path() string       { return d.path }
func (d *fakeDoc) LanguageID() string { return d.lang }
func (d *fakeDoc) Text() string       { return d.text }

func manifestDoc(text string) *fakeDoc {
	return &fakeDoc{uri: "file:///app/package.json", path: "/app/package.json", lang: "json", text: text}
}

type fakeEditor struct {
	mu  sync.Mutex
	doc Document
}

func (e *fakeEditor) ActiveDocument() (Document, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc, e.doc != nil
}

func (e *fakeEditor) set(d Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = d
}

// gatedEditor blocks ActiveDocument once gate is set, after signalling
// entered.
type gatedEditor struct {
	fakeEditor
	gmu     sync.Mutex
	gate    chan struct{}
	entered chan struct{}
}

func (e *gatedEditor) ActiveDocument() (Document, bool) {
	e.gmu.Lock()
	gate := e.gate
	e.gmu.Unlock()
	if gate != nil {
		e.entered <- struct{}{}
		<-gate
	}
	return e.fakeEditor.ActiveDocument()
}

func (e *gatedEditor) hold() chan struct{} {
	e.gmu.Lock()
	defer e.gmu.Unlock()
	e.gate = make(chan struct{})
	e.entered = make(chan struct{}, 1)
	return e.gate
}

type sinkCall struct {
	uri         string
	decorations []Decoration
}

type fakeSink struct{ calls chan sinkCall }

func newFakeSink() *fakeSink { return &fakeSink{calls: make(chan sinkCall, 32)} }

func (s *fakeSink) SetDecorations(uri string, decorations []Decoration) {
	s.calls <- sinkCall{uri: uri, decorations: decorations}
}

func (s *fakeSink) next(t *testing.T) sinkCall {
	t.Helper()
	select {
	case c := <-s.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SetDecorations")
		return sinkCall{}
	}
}

func (s *fakeSink) expectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case c := <-s.calls:
		t.Fatalf("unexpected SetDecorations(%q, %d decorations)", c.uri, len(c.decorations))
	case <-time.After(d):
	}
}

type fakeDirectory struct {
	calls  atomic.Int32
	lookup func(ctx context.Context, call int32, names []string) (directory.Libraries, error)
}

func (f *fakeDirectory) Lookup(ctx context.Context, names []string) (directory.Libraries, error) {
	n := f.calls.Add(1)
	return f.lookup(ctx, n, names)
}

type fakeStatus struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (s *fakeStatus) Info(msg string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, msg)
}

func (s *fakeStatus) Warn(msg string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warns = append(s.warns, msg)
}

func (s *fakeStatus) snapshot() (infos, warns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.infos...), append([]string(nil), s.warns...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func libsWithStars(name string, stars int64) directory.Libraries {
	return directory.Libraries{name: {
		NpmPkg: name,
		GitHub: directory.GitHub{Stats: directory.Stats{Stars: stars}},
	}}
}
