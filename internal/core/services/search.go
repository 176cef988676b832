package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
	"github.com/custodia-labs/quarry/internal/core/retrieval"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks the stored index with BM25. Statistics are rebuilt
// from the loaded snapshot on every call.
type SearchService struct {
	store        driven.IndexStore
	params       retrieval.Params
	defaultLimit int
}

// NewSearchService creates a search service. defaultLimit applies when a
// request does not set one; non-positive means domain.DefaultTopK.
func NewSearchService(store driven.IndexStore, params retrieval.Params, defaultLimit int) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultTopK
	}
	return &SearchService{
		store:        store,
		params:       params,
		defaultLimit: defaultLimit,
	}
}

// RetrievalParams builds ranking parameters from settings. The stemmer is
// only used when stemming is enabled and may be nil otherwise.
func RetrievalParams(settings domain.RetrievalSettings, stemmer driven.Stemmer) retrieval.Params {
	params := retrieval.Params{K1: settings.K1, B: settings.B, Tokenizer: retrieval.Tokenize}
	if settings.Stem && stemmer != nil {
		params.Tokenizer = retrieval.StemmingTokenizer(stemmer.Stem)
	}
	return params
}

// Search ranks every chunk against query and returns the top results.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query required", domain.ErrInvalidInput)
	}

	idx, ok := s.store.Load(ctx)
	if !ok {
		logger.Debug("No index at %s", s.store.Path())
		return &domain.SearchResponse{Results: []domain.ScoredResult{}}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	ranked := retrieval.Rank(query, idx.Chunks, s.params)
	results := retrieval.TopK(ranked, limit)
	if opts.Normalise {
		results = retrieval.NormaliseScores(results)
	}

	logger.Debug("Ranked %d chunks, returning %d", len(ranked), len(results))
	return &domain.SearchResponse{
		Present:    true,
		Results:    results,
		Normalised: opts.Normalise,
	}, nil
}

// Status reports whether an index exists. It never fails.
func (s *SearchService) Status(ctx context.Context) domain.IndexSummary {
	return s.store.Summarize(ctx)
}
