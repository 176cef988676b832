// Package retrieval implements lexical ranking over chunk collections.
//
// Tokenize turns text into lower-case alphanumeric terms.
// ComputeStatistics derives corpus-level term statistics and Rank scores
// every chunk against a query with Okapi BM25. All functions are pure and
// safe for concurrent use.
//
// # Import Rules
//
//   - Can Import: domain, standard library
//   - Cannot Import: adapters, services, external dependencies
package retrieval
