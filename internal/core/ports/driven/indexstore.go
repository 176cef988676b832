package driven

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// IndexStore persists the index snapshot.
type IndexStore interface {
	// Save atomically replaces the stored snapshot. Concurrent readers
	// observe either the previous snapshot or idx, never a partial write.
	Save(ctx context.Context, idx *domain.Index) error

	// Load returns the stored index. The boolean is false when no usable
	// snapshot exists: missing, unreadable, malformed or empty.
	Load(ctx context.Context) (*domain.Index, bool)

	// Summarize reports presence, chunk count and document count.
	Summarize(ctx context.Context) domain.IndexSummary

	// Path returns where the snapshot lives.
	Path() string
}
