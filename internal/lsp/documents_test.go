package lsp

import (
	"path/filepath"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDocumentsActiveTracking(t *testing.T) {
	s := newDocuments()
	if _, ok := s.ActiveDocument(); ok {
		t.Fatal("empty store has an active document")
	}

	s.open(protocol.TextDocumentItem{URI: "file:///a/package.json", LanguageID: "json", Text: "{}"})
	s.open(protocol.TextDocumentItem{URI: "file:///a/index.ts", LanguageID: "typescript", Text: ""})
	if doc, _ := s.ActiveDocument(); doc.URI() != "file:///a/index.ts" {
		t.Errorf("active = %q, want last opened", doc.URI())
	}

	if _, err := s.change("file:///a/package.json", 2, []any{protocol.TextDocumentContentChangeEventWhole{Text: `{"a":1}`}}); err != nil {
		t.Fatal(err)
	}
	doc, _ := s.ActiveDocument()
	if doc.URI() != "file:///a/package.json" || doc.Text() != `{"a":1}` {
		t.Errorf("active after change = %q %q", doc.URI(), doc.Text())
	}
	if doc.Path() != filepath.FromSlash("/a/package.json") || doc.LanguageID() != "json" {
		t.Errorf("snapshot lost metadata: path %q language %q", doc.Path(), doc.LanguageID())
	}

	s.close("file:///a/package.json")
	if _, ok := s.ActiveDocument(); ok {
		t.Error("closed document still active")
	}
	if _, ok := s.get("file:///a/index.ts"); !ok {
		t.Error("other document dropped on close")
	}
}

func TestDocumentsIncrementalChange(t *testing.T) {
	s := newDocuments()
	s.open(protocol.TextDocumentItem{URI: "file:///p/package.json", LanguageID: "json", Text: "{\n  \"a\": \"1\"\n}"})

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 1, Character: 3},
			End:   protocol.Position{Line: 1, Character: 4},
		},
		Text: "react",
	}
	doc, err := s.change("file:///p/package.json", 2, []any{change})
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"react\": \"1\"\n}"; doc.Text() != want {
		t.Errorf("text = %q, want %q", doc.Text(), want)
	}
}

func TestDocumentsChangeErrors(t *testing.T) {
	s := newDocuments()
	if _, err := s.change("file:///nope", 1, nil); err == nil {
		t.Error("change to unopened document should fail")
	}
	s.open(protocol.TextDocumentItem{URI: "file:///x"})
	if _, err := s.change("file:///x", 2, []any{"bogus"}); err == nil {
		t.Error("unknown change type should fail")
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/me/app/package.json", filepath.FromSlash("/home/me/app/package.json")},
		{"file:///home/me/my%20app/package.json", filepath.FromSlash("/home/me/my app/package.json")},
		{"untitled:Untitled-1", "Untitled-1"},
		{"vscode-vfs://github/org/repo/package.json", "/org/repo/package.json"},
	}
	for _, tt := range tests {
		if got := uriToPath(tt.uri); got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
