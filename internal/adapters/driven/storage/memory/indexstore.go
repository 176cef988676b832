package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Indexes are copied on the way in and out so callers cannot alter
// stored state.
type IndexStore struct {
	mu    sync.RWMutex
	index *domain.Index
	saves int
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save replaces the stored index.
func (s *IndexStore) Save(_ context.Context, idx *domain.Index) error {
	if idx == nil {
		return fmt.Errorf("%w: nil index", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = clone(idx)
	s.saves++
	return nil
}

// Load returns a copy of the stored index, or false when it is absent or empty.
func (s *IndexStore) Load(_ context.Context) (*domain.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index.IsEmpty() {
		return nil, false
	}
	return clone(s.index), true
}

// Summarize reports presence and size of the stored index.
func (s *IndexStore) Summarize(_ context.Context) domain.IndexSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.index)
}

// Path identifies the store in log output.
func (s *IndexStore) Path() string {
	return "memory"
}

// Saves returns how many times Save succeeded.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func clone(idx *domain.Index) *domain.Index {
	out := &domain.Index{CreatedAt: idx.CreatedAt}
	if idx.Chunks != nil {
		out.Chunks = make([]domain.Chunk, len(idx.Chunks))
		copy(out.Chunks, idx.Chunks)
	}
	return out
}
