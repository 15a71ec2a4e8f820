package manifest

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// FileName is the base name of the manifests this package understands.
const FileName = "package.json"

// entryPattern matches a `"name": "version"` pair at the start of a line.
// Escaped quotes are allowed inside the version value.
var entryPattern = regexp.MustCompile(`^\s*"(?P<name>[^"]+)"\s*:\s*"(?P<version>(?:\\\\"|[^"])*)"`)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Position is a zero-based location in a document. Character is measured in
// UTF-16 code units, matching the Language Server Protocol.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// DependencyRef ties a dependency name to the zero-width anchor right after
// its declaration line.
type DependencyRef struct {
	Name   string   `json:"name"`
	Anchor Position `json:"anchor"`
}

// sections are the top-level keys whose entries are annotated. Keys match
// case-sensitively.
var sections = []string{"dependencies", "peerDependencies"}

// IsManifest reports whether a document with the given path and language
// identifier should be annotated.
func IsManifest(path, languageID string) bool {
	if !strings.HasSuffix(strings.ToLower(path), FileName) {
		return false
	}
	return languageID == "json" || languageID == "jsonc"
}

// WantedNames returns the set of names declared under dependencies and
// peerDependencies. A manifest that is not a JSON object yields nil, and a
// section that is not an object contributes no names.
func WantedNames(text string) map[string]struct{} {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil
	}

	var names map[string]struct{}
	for _, key := range sections {
		raw, ok := top[key]
		if !ok {
			continue
		}
		// Values stay raw so odd version specifiers never fail the parse.
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		for name := range entries {
			if names == nil {
				names = make(map[string]struct{})
			}
			names[name] = struct{}{}
		}
	}
	return names
}

// ParseDependencyRefs returns one ref per line that declares a wanted
// dependency, in document order. Malformed manifests and manifests without
// dependencies produce no refs. Names declared in JSON but not found on a
// single `"name": "version"` line are skipped.
func ParseDependencyRefs(text string) []DependencyRef {
	wanted := WantedNames(text)
	if len(wanted) == 0 {
		return nil
	}

	var refs []DependencyRef
	for i, line := range lineBreak.Split(text, -1) {
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if _, ok := wanted[name]; !ok {
			continue
		}
		refs = append(refs, DependencyRef{
			Name:   name,
			Anchor: Position{Line: i, Character: utf16Len(strings.TrimRightFunc(line, unicode.IsSpace))},
		})
	}
	return refs
}

// ReadFile loads a manifest from disk and parses its dependency refs.
func ReadFile(path string) (string, []DependencyRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	text := string(data)
	return text, ParseDependencyRefs(text), nil
}

// Names returns the ref names in order, without duplicates.
func Names(refs []DependencyRef) []string {
	seen := make(map[string]struct{}, len(refs))
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	return names
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
