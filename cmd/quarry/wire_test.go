package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/snapshot"
	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/sqlite"
)

func TestOpenIndexStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want any
	}{
		{"json", filepath.Join(dir, "index.json"), &snapshot.Store{}},
		{"zstd", filepath.Join(dir, "index.json.zst"), &snapshot.Store{}},
		{"sqlite", filepath.Join(dir, "index.db"), &sqlite.Store{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := openIndexStore(tt.path)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeStore()) }()

			assert.IsType(t, tt.want, store)
			assert.Equal(t, tt.path, store.Path())
		})
	}
}
