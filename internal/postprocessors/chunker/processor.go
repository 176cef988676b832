// Package chunker splits normalised documents into overlapping
// fixed-size character windows.
package chunker

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// idPrefixRunes is how much chunk text feeds into the chunk id.
const idPrefixRunes = 32

// Processor splits document content into fixed-size chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Verify interface compliance.
var _ driven.PostProcessor = (*Processor)(nil)

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the window size in characters. Non-positive values are ignored.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
// Negative values are ignored.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process cuts doc.Content into windows and stamps each with the
// document's title, path and a content-derived id.
func (p *Processor) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := Split(doc.Content, p.chunkSize, p.overlap)
	chunks := make([]domain.Chunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:    ChunkID(doc.Path, text),
			Title: doc.Title,
			Path:  doc.Path,
			Text:  text,
		})
	}
	return chunks, nil
}

// Split slides a window of size characters across text, advancing by
// size-overlap (at least 1) each step. Windows are trimmed and empty ones
// dropped. The walk stops once a window reaches the end of text. If no
// window survives, the untrimmed text is returned as the only chunk.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = domain.DefaultChunkSize
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}

	runes := []rune(text)
	n := len(runes)

	var out []string
	for start := 0; start < n; start += step {
		end := start + size
		if end > n {
			end = n
		}
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
		if end == n {
			break
		}
	}

	if len(out) == 0 {
		return []string{text}
	}
	return out
}

// ChunkID returns the hex BLAKE3 digest of path, a "|" separator and the
// first 32 characters of text. Ids are stable across re-ingestion of
// unchanged content.
func ChunkID(path, text string) string {
	prefix := text
	if runes := []rune(text); len(runes) > idPrefixRunes {
		prefix = string(runes[:idPrefixRunes])
	}
	sum := blake3.Sum256([]byte(path + "|" + prefix))
	return hex.EncodeToString(sum[:])
}
