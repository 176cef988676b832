package filesystem

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory creates filesystem connectors that share a reference root.
type Factory struct {
	referenceRoot string
}

// NewFactory creates a factory. Document paths are made relative to
// referenceRoot; empty means the current working directory.
func NewFactory(referenceRoot string) *Factory {
	return &Factory{referenceRoot: referenceRoot}
}

// Create returns a connector reading root.
func (f *Factory) Create(_ context.Context, root string) (driven.Connector, error) {
	return New(root, f.referenceRoot), nil
}
