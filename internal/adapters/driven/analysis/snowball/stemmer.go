// Package snowball stems English terms with the Snowball (Porter2) algorithm.
package snowball

import (
	"github.com/kljensen/snowball"

	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// Ensure Stemmer implements the interface.
var _ driven.Stemmer = (*Stemmer)(nil)

// Stemmer reduces English terms to their Snowball stem.
type Stemmer struct{}

// New creates an English stemmer.
func New() *Stemmer {
	return &Stemmer{}
}

// Stem returns the stem of term, or term itself when stemming fails.
// Stop words are kept so stemming never removes query terms.
func (s *Stemmer) Stem(term string) string {
	stemmed, err := snowball.Stem(term, "english", false)
	if err != nil || stemmed == "" {
		return term
	}
	return stemmed
}
