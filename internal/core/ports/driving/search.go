package driving

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// SearchService ranks the current index against free-text queries.
type SearchService interface {
	// Search ranks every chunk against query with BM25 and returns the
	// top results. A missing or empty index yields Present=false, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Status reports whether an index exists and how large it is.
	Status(ctx context.Context) domain.IndexSummary
}
