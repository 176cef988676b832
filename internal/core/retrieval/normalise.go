package retrieval

import "github.com/custodia-labs/quarry/internal/core/domain"

// TopK returns at most k leading results. k <= 0 returns all of them.
func TopK(results []domain.ScoredResult, k int) []domain.ScoredResult {
	if k <= 0 || k >= len(results) {
		return results
	}
	return results[:k]
}

// NormaliseScores returns a copy of results with every score divided by
// the first (maximum) score. Results are returned unchanged when the top
// score is not positive. Call after truncation; scores are display-only.
func NormaliseScores(results []domain.ScoredResult) []domain.ScoredResult {
	out := make([]domain.ScoredResult, len(results))
	copy(out, results)
	if len(out) == 0 || out[0].Score <= 0 {
		return out
	}
	top := out[0].Score
	for i := range out {
		out[i].Score /= top
	}
	return out
}
