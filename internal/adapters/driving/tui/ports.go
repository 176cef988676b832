// Package tui provides an interactive terminal user interface for Quarry.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
)

// SourceReader loads the full text of a document by its index path.
type SourceReader func(path string) (string, error)

// Ports aggregates the driving ports the TUI talks to.
type Ports struct {
	// Search ranks the index. Required.
	Search driving.SearchService

	// Ask answers questions. The ask view reports the model as
	// unconfigured when nil.
	Ask driving.AskService

	// ReadSource backs the full-document toggle in the preview view.
	ReadSource SourceReader
}

// NewPorts creates a Ports aggregate with the given services.
func NewPorts(search driving.SearchService, ask driving.AskService, read SourceReader) *Ports {
	return &Ports{Search: search, Ask: ask, ReadSource: read}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
