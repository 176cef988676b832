package domain

import "time"

// Index is an immutable snapshot of the chunk collection.
// An Index with zero chunks is treated as absent by every consumer.
type Index struct {
	// CreatedAt is when the ingestion run that produced it completed.
	CreatedAt time.Time `json:"createdAt"`

	// Chunks are in ingestion discovery order (file, then window).
	Chunks []Chunk `json:"chunks"`
}

// IsEmpty reports whether the index is nil or holds no chunks.
func (idx *Index) IsEmpty() bool {
	return idx == nil || len(idx.Chunks) == 0
}

// IndexSummary describes corpus readiness for status surfaces.
type IndexSummary struct {
	// Present is false when no usable index exists.
	Present bool `json:"hasIndex" yaml:"hasIndex"`

	// Chunks is the chunk count.
	Chunks int `json:"chunks" yaml:"chunks"`

	// Docs is the number of distinct source paths.
	Docs int `json:"docs" yaml:"docs"`
}

// Summarize derives an IndexSummary. Empty indexes report as absent.
func Summarize(idx *Index) IndexSummary {
	if idx.IsEmpty() {
		return IndexSummary{}
	}
	paths := make(map[string]struct{})
	for i := range idx.Chunks {
		paths[idx.Chunks[i].Path] = struct{}{}
	}
	return IndexSummary{
		Present: true,
		Chunks:  len(idx.Chunks),
		Docs:    len(paths),
	}
}

// IngestProgress is reported once per chunk appended during ingestion.
type IngestProgress struct {
	// Title is the file currently being chunked.
	Title string

	// Chunks is the running total across the corpus.
	Chunks int
}

// IngestReport summarises a completed ingestion run.
type IngestReport struct {
	// Files is the number of eligible files discovered.
	Files int

	// Skipped is the number of eligible files that produced no chunks
	// (unreadable or empty).
	Skipped int

	// Chunks is the number of chunks written.
	Chunks int

	// CreatedAt is the snapshot timestamp.
	CreatedAt time.Time

	// Output is where the snapshot was written.
	Output string
}
