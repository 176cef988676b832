package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store reads and writes an index snapshot file.
type Store struct {
	path       string
	compressed bool
}

// New creates a store for path. Empty path means domain.DefaultIndexPath.
func New(path string) *Store {
	if path == "" {
		path = domain.DefaultIndexPath
	}
	return &Store{
		path:       path,
		compressed: strings.HasSuffix(path, CompressedSuffix),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes idx to a temporary sibling file and renames it into place.
// The parent directory is created if needed.
func (s *Store) Save(ctx context.Context, idx *domain.Index) error {
	if idx == nil {
		return fmt.Errorf("%w: nil index", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if s.compressed {
		data = compress(data)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temporary snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temporary snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temporary snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temporary snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot into place: %w", err)
	}

	if parent, err := os.Open(dir); err == nil {
		parent.Sync()
		parent.Close()
	}

	logger.Debug("snapshot: wrote %d chunks (%d bytes) to %s", len(idx.Chunks), len(data), s.path)
	return nil
}

// Load reads the snapshot. Any failure, or a snapshot with no chunks,
// reports the index as absent.
func (s *Store) Load(_ context.Context) (*domain.Index, bool) {
	idx, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("snapshot: no index at %s", s.path)
		} else {
			logger.Warn("snapshot: %v", err)
		}
		return nil, false
	}
	if idx.IsEmpty() {
		logger.Debug("snapshot: index at %s has no chunks", s.path)
		return nil, false
	}
	return idx, true
}

// Summarize reports presence and size of the stored index.
func (s *Store) Summarize(ctx context.Context) domain.IndexSummary {
	idx, ok := s.Load(ctx)
	if !ok {
		return domain.IndexSummary{}
	}
	return domain.Summarize(idx)
}

func (s *Store) read() (*domain.Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	if s.compressed {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
	}
	var idx domain.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return &idx, nil
}
