package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/react-native-community/vscode-react-native-directory/pkg/annotate"
)

// document is an immutable snapshot of an open text document.
type document struct {
	uri        string
	path       string
	languageID string
	version    protocol.Integer
	text       string
}

func (d *document) URI() string        { return d.uri }
func (d *document) Path() string       { return d.path }
func (d *document) LanguageID() string { return d.languageID }
func (d *document) Text() string       { return d.text }

// documents tracks open documents and which one the user is working in.
// The most recently opened or changed document counts as active, since LSP
// has no notion of focus.
type documents struct {
	mu     sync.RWMutex
	docs   map[string]*document
	active string
}

func newDocuments() *documents {
	return &documents{docs: make(map[string]*document)}
}

func (s *documents) open(item protocol.TextDocumentItem) *document {
	doc := &document{
		uri:        item.URI,
		path:       uriToPath(item.URI),
		languageID: item.LanguageID,
		version:    item.Version,
		text:       item.Text,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.uri] = doc
	s.active = doc.uri
	return doc
}

// change applies content changes in order and returns the new snapshot.
func (s *documents) change(uri string, version protocol.Integer, changes []any) (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("change to unopened document %s", uri)
	}
	text := prev.text
	for _, raw := range changes {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			start, end := change.Range.IndexesIn(text)
			text = text[:start] + change.Text + text[end:]
		default:
			return nil, fmt.Errorf("unexpected change event type %T", raw)
		}
	}

	doc := &document{uri: uri, path: prev.path, languageID: prev.languageID, version: version, text: text}
	s.docs[uri] = doc
	s.active = uri
	return doc, nil
}

func (s *documents) close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
	if s.active == uri {
		s.active = ""
	}
}

func (s *documents) get(uri string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// ActiveDocument implements annotate.Editor.
func (s *documents) ActiveDocument() (annotate.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[s.active]
	if !ok {
		return nil, false
	}
	return doc, true
}

// uriToPath maps file URIs to local paths. Other schemes (untitled:,
// vscode-vfs:) keep their URI path, which is enough to recognise a
// package.json by name.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	if u.Scheme == "file" {
		return filepath.FromSlash(u.Path)
	}
	if u.Path != "" {
		return u.Path
	}
	return u.Opaque
}
