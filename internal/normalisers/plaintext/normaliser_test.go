package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

func TestNormaliser_ImplementsInterface(t *testing.T) {
	var _ driven.Normaliser = New()
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.ElementsMatch(t, []string{"text/plain", "text/markdown"}, New().SupportedMIMETypes())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/corpus/apps/acme-cover-letter.md",
		Path:     "apps/acme-cover-letter.md",
		MIMEType: "text/markdown",
		Content:  []byte("# Acme\n\nI *love* Go."),
	}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	doc := result.Document
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "apps/acme-cover-letter.md", doc.Path)
	assert.Equal(t, "acme-cover-letter.md", doc.Title)
	assert.Equal(t, "# Acme\n\nI *love* Go.", doc.Content, "markdown is kept verbatim")
	assert.Equal(t, "text/markdown", doc.Metadata["mime_type"])
}

func TestNormalise_LineEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"unchanged", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &domain.RawDocument{Path: "x.txt", MIMEType: "text/plain", Content: []byte(tt.content)}

			result, err := New().Normalise(context.Background(), raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Document.Content)
		})
	}
}

func TestNormalise_TitleFromURI(t *testing.T) {
	raw := &domain.RawDocument{URI: "/tmp/notes.txt", MIMEType: "text/plain"}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "notes.txt", result.Document.Title)
}

func TestNormalise_NilInput(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_UnsupportedType(t *testing.T) {
	raw := &domain.RawDocument{Path: "a.pdf", MIMEType: "application/pdf"}

	_, err := New().Normalise(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNormalise_CopiesMetadata(t *testing.T) {
	meta := map[string]any{"size": int64(3)}
	raw := &domain.RawDocument{Path: "a.txt", MIMEType: "text/plain", Content: []byte("abc"), Metadata: meta}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Document.Metadata["size"])
	_, leaked := meta["mime_type"]
	assert.False(t, leaked)
}
