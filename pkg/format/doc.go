// Package format turns directory entries into the text shown to users: the
// short inline [Label] placed after a dependency line, the Markdown
// [Tooltip] shown on hover and the [Detail] line under search results.
//
// Every function is pure. The same entry always renders to the same bytes.
package format
