package retrieval

import (
	"math"
	"sort"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Params are the BM25 tuning parameters.
type Params struct {
	// K1 controls term-frequency saturation.
	K1 float64

	// B controls length normalisation, 0 disables it.
	B float64

	// Tokenizer is applied to both query and chunks. Nil means Tokenize.
	Tokenizer Tokenizer
}

// DefaultParams returns k1=1.5, b=0.75 with the plain tokenizer.
func DefaultParams() Params {
	return Params{K1: domain.DefaultK1, B: domain.DefaultB, Tokenizer: Tokenize}
}

// IDF returns the smoothed inverse document frequency of a term that
// appears in df of n chunks. The +1 keeps it positive for common terms.
func IDF(n, df int) float64 {
	return math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// Rank scores every chunk against query and returns one result per chunk,
// sorted by descending score. Ties keep corpus order. Chunks sharing no
// term with the query score 0 and are still returned.
func Rank(query string, chunks []domain.Chunk, params Params) []domain.ScoredResult {
	if len(chunks) == 0 {
		return []domain.ScoredResult{}
	}

	tok := params.Tokenizer
	if tok == nil {
		tok = Tokenize
	}

	stats := ComputeStatistics(chunks, tok)
	terms := distinct(tok(query))

	avgdl := stats.AvgDL
	if avgdl == 0 {
		avgdl = 1
	}

	results := make([]domain.ScoredResult, len(chunks))
	for i := range chunks {
		score := 0.0
		for _, term := range terms {
			df := stats.DF[term]
			if df == 0 {
				continue
			}
			freq := float64(stats.TF[i][term])
			denom := freq + params.K1*(1-params.B+params.B*float64(stats.Lengths[i])/avgdl)
			if denom == 0 {
				denom = 1
			}
			score += IDF(stats.N, df) * (freq * (params.K1 + 1)) / denom
		}
		results[i] = domain.ScoredResult{Chunk: chunks[i], Score: score}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

func distinct(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
