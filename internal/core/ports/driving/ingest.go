package driving

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// IngestService builds and persists an index from a corpus directory.
type IngestService interface {
	// Ingest walks root, chunks every eligible file and replaces the
	// stored snapshot. It fails with domain.ErrNotFound when root is not a
	// directory and domain.ErrNoEligibleFiles when nothing can be ingested.
	Ingest(ctx context.Context, root string) (*domain.IngestReport, error)
}

// Watcher keeps an index in step with a corpus directory.
type Watcher interface {
	// Run ingests root once, then rebuilds the whole index whenever files
	// under root change. It returns when ctx is cancelled.
	Run(ctx context.Context, root string) error
}
