package httpapi

import (
	"errors"

	"github.com/custodia-labs/quarry/internal/core/ports/driving"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("httpapi: search service is required")

// Ports aggregates the driving ports the HTTP API calls.
type Ports struct {
	// Search ranks the index and reports status.
	Search driving.SearchService

	// Ask answers questions. Optional; /api/ask replies 503 without it.
	Ask driving.AskService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
