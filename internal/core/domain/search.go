package domain

// DefaultTopK is the number of results returned when no limit is given.
const DefaultTopK = 8

// SearchOptions configures a ranking request.
type SearchOptions struct {
	// Limit is the maximum number of results (top-K).
	Limit int

	// Normalise divides every returned score by the top score.
	// It is applied after truncation and is for display only.
	Normalise bool
}

// ScoredResult pairs a chunk with its relevance score.
type ScoredResult struct {
	// Chunk is the matched chunk. Consumers must not mutate it.
	Chunk Chunk

	// Score is non-negative and unbounded above.
	Score float64
}

// SearchResponse is the ranking entry point's result.
type SearchResponse struct {
	// Present is false when there is no index to rank against.
	Present bool

	// Results are in descending score order.
	Results []ScoredResult

	// Normalised reports whether scores were divided by the top score.
	Normalised bool
}

// Answer is a language model response grounded in ranked chunks.
type Answer struct {
	// Text is the model's answer.
	Text string

	// Sources are the chunks given to the model, with normalised scores.
	Sources []ScoredResult
}
