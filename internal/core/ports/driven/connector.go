package driven

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Connector enumerates the documents under a corpus root.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Root returns the directory being read.
	Root() string

	// Validate checks the root exists and is a directory.
	// Returns an error wrapping domain.ErrNotFound otherwise.
	Validate(ctx context.Context) error

	// FullSync lazily produces every eligible document in a deterministic
	// order. Per-file failures are sent on the error channel and do not
	// stop the walk. Both channels are closed when the walk ends.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch emits a change for every eligible file created, written,
	// removed or renamed under the root. The channel closes when ctx ends.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}
