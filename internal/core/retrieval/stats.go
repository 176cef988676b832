package retrieval

import "github.com/custodia-labs/quarry/internal/core/domain"

// Statistics holds the corpus-level values BM25 needs.
// It is derived from a chunk list and never persisted.
type Statistics struct {
	// N is the number of chunks.
	N int

	// AvgDL is the mean chunk length in tokens, 0 when N is 0.
	AvgDL float64

	// DF maps a term to the number of chunks containing it at least once.
	DF map[string]int

	// TF holds per-chunk term frequencies, aligned with the input order.
	TF []map[string]int

	// Lengths holds per-chunk token counts, aligned with the input order.
	Lengths []int
}

// ComputeStatistics tokenizes every chunk once and builds Statistics.
// A nil tokenizer means Tokenize.
func ComputeStatistics(chunks []domain.Chunk, tok Tokenizer) *Statistics {
	if tok == nil {
		tok = Tokenize
	}

	stats := &Statistics{
		N:       len(chunks),
		DF:      make(map[string]int),
		TF:      make([]map[string]int, len(chunks)),
		Lengths: make([]int, len(chunks)),
	}

	total := 0
	for i := range chunks {
		terms := tok(chunks[i].Text)
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}
		for t := range tf {
			stats.DF[t]++
		}
		stats.TF[i] = tf
		stats.Lengths[i] = len(terms)
		total += len(terms)
	}

	if stats.N > 0 {
		stats.AvgDL = float64(total) / float64(stats.N)
	}
	return stats
}
