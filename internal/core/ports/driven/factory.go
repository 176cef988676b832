package driven

import "context"

// ConnectorFactory creates connectors for corpus roots.
type ConnectorFactory interface {
	// Create returns a Connector reading root.
	Create(ctx context.Context, root string) (Connector, error)
}
