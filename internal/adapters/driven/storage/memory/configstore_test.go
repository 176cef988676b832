package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

func TestConfigStore_Defaults(t *testing.T) {
	store := NewConfigStore()

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
	assert.Empty(t, store.Path())
}

func TestConfigStore_SaveAndLoad(t *testing.T) {
	store := NewConfigStore()
	settings := domain.DefaultSettings()
	settings.Corpus.Root = "/corpus"
	settings.Retrieval.TopK = 3

	require.NoError(t, store.Save(settings))
	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "/corpus", got.Corpus.Root)
	assert.Equal(t, 3, got.Retrieval.TopK)
}

func TestConfigStore_SaveInvalid(t *testing.T) {
	store := NewConfigStore()
	settings := domain.DefaultSettings()
	settings.Chunker.Size = -5

	err := store.Save(settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, _ := store.Load()
	assert.Equal(t, domain.DefaultChunkSize, got.Chunker.Size)
}
