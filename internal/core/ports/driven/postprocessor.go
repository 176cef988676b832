package driven

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// PostProcessor turns a normalised document into chunks.
type PostProcessor interface {
	// Name returns the processor name for logging.
	Name() string

	// Process returns the document's chunks in text order.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
