package driven

// Stemmer reduces a lower-case term to its stem.
type Stemmer interface {
	Stem(term string) string
}
