// Package snapshot persists the index as a single JSON file.
//
// The file holds {"createdAt": ..., "chunks": [...]}. Saves write a
// temporary file in the target directory, fsync it and rename it over the
// target, so concurrent readers see either the old or the new snapshot.
// Paths ending in ".zst" are zstd-compressed.
package snapshot
