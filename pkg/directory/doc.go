// Package directory is a client for the React Native Directory API.
//
// [Client.Lookup] batches package names into one request against the
// `library` endpoint and returns whatever entries the directory knows;
// [Client.Search] runs a catalog search with `:keyword` filters parsed by
// [ParseQuery]. Entries decode into [Library], which models the directory's
// mixed bool/string attributes with [Flag] and [NewArchitecture].
package directory
