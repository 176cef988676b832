package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService builds a fresh index from a corpus directory and saves it.
type IngestService struct {
	factory    driven.ConnectorFactory
	normaliser driven.Normaliser
	processor  driven.PostProcessor
	store      driven.IndexStore

	progress func(domain.IngestProgress)
	now      func() time.Time
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithProgress registers a callback invoked after every chunk is appended.
func WithProgress(fn func(domain.IngestProgress)) IngestOption {
	return func(s *IngestService) {
		s.progress = fn
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) IngestOption {
	return func(s *IngestService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewIngestService creates an ingestion service.
func NewIngestService(
	factory driven.ConnectorFactory,
	normaliser driven.Normaliser,
	processor driven.PostProcessor,
	store driven.IndexStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		factory:    factory,
		normaliser: normaliser,
		processor:  processor,
		store:      store,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest walks root, chunks every eligible file in walk order and replaces
// the stored index. Unreadable and empty files are skipped.
func (s *IngestService) Ingest(ctx context.Context, root string) (*domain.IngestReport, error) {
	logger.Section("Ingestion")
	logger.Debug("Root: %s", root)

	if s.factory == nil {
		return nil, errors.New("create connector: connector factory not configured")
	}
	connector, err := s.factory.Create(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return nil, err
	}

	report := &domain.IngestReport{Output: s.store.Path()}
	chunks := make([]domain.Chunk, 0)

	docsCh, errsCh := connector.FullSync(ctx)
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if errors.Is(err, domain.ErrUnreadable) {
				report.Files++
				report.Skipped++
			}
			logger.Warn("Skipping: %v", err)

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			report.Files++

			docChunks, err := s.processDocument(ctx, &raw)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				report.Skipped++
				logger.Warn("Skipping %s: %v", raw.Path, err)
				continue
			}
			if len(docChunks) == 0 {
				report.Skipped++
				logger.Debug("Skipping empty file %s", raw.Path)
				continue
			}
			for _, c := range docChunks {
				chunks = append(chunks, c)
				if s.progress != nil {
					s.progress(domain.IngestProgress{Title: c.Title, Chunks: len(chunks)})
				}
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report.Files == 0 {
		return nil, fmt.Errorf("%w under %s (looking for .txt and .md)", domain.ErrNoEligibleFiles, root)
	}

	idx := &domain.Index{
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Chunks:    chunks,
	}
	if err := s.store.Save(ctx, idx); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}

	report.Chunks = len(chunks)
	report.CreatedAt = idx.CreatedAt
	logger.Info("Ingested %d files (%d skipped) into %d chunks", report.Files, report.Skipped, report.Chunks)
	return report, nil
}

// processDocument normalises and chunks one file. Empty files yield no chunks.
func (s *IngestService) processDocument(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error) {
	if len(raw.Content) == 0 {
		return nil, nil
	}

	result, err := s.normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}

	chunks, err := s.processor.Process(ctx, &result.Document)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.processor.Name(), err)
	}
	return chunks, nil
}
