// Package manifest locates dependency declarations inside package.json text.
//
// Parsing happens in two passes. The document is first decoded as JSON to
// learn which names are declared under dependencies and peerDependencies.
// The raw text is then scanned line by line, because only a textual position
// can anchor an editor annotation: every line that starts with a
// `"name": "version"` pair for a wanted name yields a [DependencyRef] whose
// anchor sits right after the last non-whitespace character of that line.
//
// Malformed JSON is not an error here. It simply produces no refs, which
// leaves the document without annotations.
package manifest
