// Package plaintext normalises text and Markdown files. Markdown is kept
// verbatim so chunk text is always a substring of the source file.
package plaintext

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/markdown"}
}

// Normalise decodes the raw bytes as UTF-8 text with "\n" line endings.
// The title is the file's base name including its extension.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !n.supports(raw.MIMEType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.MIMEType)
	}

	doc := domain.Document{
		URI:      raw.URI,
		Path:     raw.Path,
		Title:    extractTitle(raw),
		Content:  lineEndings.Replace(string(raw.Content)),
		Metadata: copyMetadata(raw.Metadata),
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType

	return &driven.NormaliseResult{Document: doc}, nil
}

func (n *Normaliser) supports(mimeType string) bool {
	for _, m := range n.SupportedMIMETypes() {
		if m == mimeType {
			return true
		}
	}
	return false
}

// extractTitle prefers the relative path, which always uses forward
// slashes, and falls back to the URI.
func extractTitle(raw *domain.RawDocument) string {
	if raw.Path != "" {
		return path.Base(raw.Path)
	}
	return path.Base(strings.ReplaceAll(raw.URI, "\\", "/"))
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
