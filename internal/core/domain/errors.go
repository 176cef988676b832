package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Ingestion returns it when the corpus root is missing or not a directory.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no normaliser handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoEligibleFiles indicates a corpus walk found no .txt or .md files.
	ErrNoEligibleFiles = errors.New("no eligible files")

	// ErrUnreadable marks a single file that could not be read.
	// It is a partial-data error: ingestion skips the file and continues.
	ErrUnreadable = errors.New("unreadable file")

	// ErrIndexAbsent indicates an operation that needs an index found none.
	// Search and status report absence as a value; only ask returns this.
	ErrIndexAbsent = errors.New("no index found")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Ask is disabled; search and status are unaffected.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates an upstream service refused the request
	// because of its rate limit.
	ErrRateLimited = errors.New("rate limited")
)
