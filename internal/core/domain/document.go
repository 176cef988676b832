package domain

// Document is a source file after normalisation.
// It is the input to chunking and is never persisted.
type Document struct {
	// URI is the original location on disk.
	URI string

	// Path is the location relative to the reference root, using forward slashes.
	// It groups chunks into documents for summary counts.
	Path string

	// Title is the display name (base file name).
	Title string

	// Content is the full text with line endings normalised to "\n".
	Content string

	// Metadata contains normaliser-specific key-value pairs.
	Metadata map[string]any
}

// Chunk is a contiguous slice of a single source document's text.
// Chunks are the atomic unit of indexing and retrieval.
type Chunk struct {
	// ID is derived from Path and a prefix of Text, so unchanged
	// content re-ingests to the same ID.
	ID string `json:"id"`

	// Title is the source document's base file name.
	Title string `json:"title"`

	// Path is the source document's path relative to the reference root.
	Path string `json:"path"`

	// Text is the raw chunk content. It is never mutated after creation.
	Text string `json:"text"`
}
