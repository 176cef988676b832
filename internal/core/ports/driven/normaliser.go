package driven

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Normaliser transforms raw documents into text documents.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise decodes raw content into a Document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is handled by a PostProcessor.
type NormaliseResult struct {
	// Document is the normalised document with Content populated.
	Document domain.Document
}
