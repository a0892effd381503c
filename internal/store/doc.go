// Package store provides SQLite-backed history for conformance runs.
//
// Every client/schema comparison performed by the harness can be recorded as
// one row: the run it belonged to, the verdict, the fingerprints of the two
// normalized documents, and the serialized difference records. The history
// feeds the report generator and the CLI's history command, and makes drift
// between runs visible by fingerprint without re-reading documents.
//
// The database uses WAL mode for concurrent read access and a versioned
// user_version migration scheme.
package store
