// Package normalisers provides implementations of the Normaliser interface.
// Each normaliser knows how to turn a connector's raw bytes for a specific
// MIME type into document text.
package normalisers
