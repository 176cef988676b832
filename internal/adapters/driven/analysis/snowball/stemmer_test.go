package snowball

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemmer_Stem(t *testing.T) {
	s := New()

	tests := []struct {
		in   string
		want string
	}{
		{"running", "run"},
		{"2024", "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Stem(tt.in))
		})
	}
}

func TestStemmer_KeepsStopWords(t *testing.T) {
	assert.Equal(t, "the", New().Stem("the"))
}

func TestStemmer_SharedStems(t *testing.T) {
	s := New()
	assert.Equal(t, s.Stem("manage"), s.Stem("managed"))
	assert.Equal(t, s.Stem("manage"), s.Stem("managing"))
	assert.Equal(t, s.Stem("engineer"), s.Stem("engineers"))
}
