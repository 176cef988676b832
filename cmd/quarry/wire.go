package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/quarry/internal/adapters/driven/ai"
	"github.com/custodia-labs/quarry/internal/adapters/driven/analysis/snowball"
	"github.com/custodia-labs/quarry/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/snapshot"
	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quarry/internal/adapters/driving/cli"
	"github.com/custodia-labs/quarry/internal/connectors/filesystem"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/services"
	"github.com/custodia-labs/quarry/internal/logger"
	"github.com/custodia-labs/quarry/internal/normalisers/plaintext"
	"github.com/custodia-labs/quarry/internal/postprocessors/chunker"
)

// bootstrap loads settings and assembles the services behind every command.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("load .env: %v", err)
	}

	configStore, err := file.NewConfigStore(file.ConfigPath(opts.ConfigPath, os.LookupEnv))
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	settings, err := configStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings from %s: %w", configStore.Path(), err)
	}
	file.ApplyEnvironment(&settings, os.LookupEnv)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Config: %s", configStore.Path())
	logger.Debug("Index: %s", settings.Index.Path)

	store, closeStore, err := openIndexStore(settings.Index.Path)
	if err != nil {
		return nil, fmt.Errorf("index store: %w", err)
	}
	factory := filesystem.NewFactory(settings.Corpus.ReferenceRoot)
	processor := chunker.New(
		chunker.WithChunkSize(settings.Chunker.Size),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)

	params := services.RetrievalParams(settings.Retrieval, snowball.New())
	search := services.NewSearchService(store, params, settings.Retrieval.TopK)

	ingest := services.NewIngestService(factory, plaintext.New(), processor, store,
		services.WithProgress(func(p domain.IngestProgress) {
			logger.Progress("Chunked: %s (total: %d)", p.Title, p.Chunks)
		}),
	)

	llm, err := ai.CreateLLMService(settings.LLM, os.LookupEnv)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("language model: %w", err)
	}
	ask := services.NewAskService(search, llm, settings.Retrieval.TopK, ai.ChatOptions(settings.LLM))
	if prompts, err := file.NewPromptStore(""); err != nil {
		logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
	} else {
		ask.SetPromptStore(prompts)
	}

	watcher := services.NewWatcher(ingest, factory, settings.Watch.Debounce(), cli.IngestObserver(opts.Out))

	return &cli.Services{
		Settings:    settings,
		ConfigStore: configStore,
		Search:      search,
		Ingest:      ingest,
		Ask:         ask,
		Watcher:     watcher,
		CheckLLM: func(ctx context.Context) error {
			return ai.ValidateLLMConfig(ctx, settings.LLM, os.LookupEnv)
		},
		ResolvePath: func(chunkPath string) string {
			return filesystem.ResolvePath(settings.Corpus.ReferenceRoot, chunkPath)
		},
		Close: func() error {
			var errs []error
			if llm != nil {
				errs = append(errs, llm.Close())
			}
			errs = append(errs, closeStore())
			return errors.Join(errs...)
		},
	}, nil
}

// openIndexStore picks the SQLite backend for .db/.sqlite paths and the JSON
// snapshot otherwise.
func openIndexStore(path string) (driven.IndexStore, func() error, error) {
	if sqlite.Handles(path) {
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return snapshot.New(path), func() error { return nil }, nil
}
