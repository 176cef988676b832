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

// Ensure Watcher implements the interface.
var _ driving.Watcher = (*Watcher)(nil)

// Watcher rebuilds the whole index after files under the corpus root change.
// Bursts of changes within the debounce window trigger a single rebuild.
type Watcher struct {
	ingest   driving.IngestService
	factory  driven.ConnectorFactory
	debounce time.Duration
	observe  func(*domain.IngestReport, error)
}

// NewWatcher creates a watcher. observe, if non-nil, receives the outcome
// of every ingestion run including the first.
func NewWatcher(
	ingest driving.IngestService,
	factory driven.ConnectorFactory,
	debounce time.Duration,
	observe func(*domain.IngestReport, error),
) *Watcher {
	if debounce <= 0 {
		debounce = time.Duration(domain.DefaultDebounceMS) * time.Millisecond
	}
	return &Watcher{
		ingest:   ingest,
		factory:  factory,
		debounce: debounce,
		observe:  observe,
	}
}

// Run ingests root, then rebuilds on change until ctx is cancelled.
// A missing root is fatal; failed rebuilds are reported and watching continues.
func (w *Watcher) Run(ctx context.Context, root string) (err error) {
	if rebuildErr := w.rebuild(ctx, root); errors.Is(rebuildErr, domain.ErrNotFound) {
		return rebuildErr
	}

	connector, err := w.factory.Create(ctx, root)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer func() {
		err = errors.Join(err, connector.Close())
	}()

	changes, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	logger.Info("Watching %s for changes", root)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change %s: %s", change.Type, change.Document.Path)
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			_ = w.rebuild(ctx, root)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, root string) error {
	report, err := w.ingest.Ingest(ctx, root)
	if err != nil && ctx.Err() == nil {
		logger.Warn("Rebuild failed: %v", err)
	}
	if w.observe != nil && ctx.Err() == nil {
		w.observe(report, err)
	}
	return err
}
