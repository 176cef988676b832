// Package sqlite stores the index in a SQLite database instead of a JSON
// snapshot file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It is selected when index.path ends in ".db" or
// ".sqlite".
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Chunks are stored one per row in ingestion order,
// and a single snapshot row records when the index was built.
//
// # Atomicity
//
// Save replaces every row inside one transaction, so readers see either the
// previous index or the new one.
package sqlite
