// Package annotate turns the dependency lines of an open package.json into
// inline decorations backed by React Native Directory data.
//
// [Render] is the pure part: it pairs [manifest.DependencyRef] values with
// directory entries and produces [Decoration] values carrying the inline
// label and the hover text.
//
// [Controller] drives rendering from editor events. Events are debounced;
// each refresh supersedes the previous one, and only the most recent refresh
// may write to the [Sink]:
//
//	c := annotate.New(annotate.Options{
//		Editor:    docs,
//		Directory: directory.NewClient(),
//		Sink:      diagnostics,
//	})
//	c.Start()
//	defer c.Stop()
//
// Switching to a document that is not a package.json clears its
// decorations without contacting the directory.
package annotate
