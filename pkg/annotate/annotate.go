package annotate

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/format"
	"github.com/react-native-community/vscode-react-native-directory/pkg/manifest"
)

// Document is a read-only view of an open text document.
type Document interface {
	URI() string
	Path() string
	LanguageID() string
	Text() string
}

// Editor reports the document the user is currently looking at.
type Editor interface {
	ActiveDocument() (Document, bool)
}

// Directory resolves package names to directory entries.
type Directory interface {
	Lookup(ctx context.Context, names []string) (directory.Libraries, error)
}

// Sink displays decorations. Each call replaces every decoration previously
// set for uri; a nil slice clears them.
type Sink interface {
	SetDecorations(uri string, decorations []Decoration)
}

// StatusReporter shows short-lived status messages.
type StatusReporter interface {
	Info(msg string, d time.Duration)
	Warn(msg string, d time.Duration)
}

// Decoration is one rendered annotation.
type Decoration struct {
	Name         string            `json:"name"`
	Anchor       manifest.Position `json:"anchor"`
	Label        string            `json:"label"`
	Hover        string            `json:"hover"`
	Unmaintained bool              `json:"unmaintained,omitempty"`
}

// Render pairs refs with the entries in libs. Entries are matched on their
// npm package name, or on the lookup key when the entry has none. Refs
// without an entry are skipped; every ref line of a known package gets its
// own decoration, in document order.
func Render(refs []manifest.DependencyRef, libs directory.Libraries) []Decoration {
	if len(refs) == 0 || len(libs) == 0 {
		return nil
	}
	byName := make(map[string]*directory.Library, len(libs)*2)
	for _, key := range slices.Sorted(maps.Keys(libs)) {
		lib := libs[key]
		if lib.NpmPkg == "" {
			lib.NpmPkg = key
		}
		byName[lib.NpmPkg] = &lib
		if _, ok := byName[key]; !ok {
			byName[key] = &lib
		}
	}

	var out []Decoration
	for _, ref := range refs {
		lib, ok := byName[ref.Name]
		if !ok {
			continue
		}
		out = append(out, Decoration{
			Name:         ref.Name,
			Anchor:       ref.Anchor,
			Label:        format.Label(lib),
			Hover:        format.Tooltip(lib),
			Unmaintained: lib.Unmaintained,
		})
	}
	return out
}
