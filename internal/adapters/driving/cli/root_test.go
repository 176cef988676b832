package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/retrieval"
	coreservices "github.com/custodia-labs/quarry/internal/core/services"
)

type stubIngest struct {
	report *domain.IngestReport
	err    error
	root   string
}

func (s *stubIngest) Ingest(_ context.Context, root string) (*domain.IngestReport, error) {
	s.root = root
	return s.report, s.err
}

type stubWatcher struct {
	root string
	err  error
}

func (s *stubWatcher) Run(_ context.Context, root string) error {
	s.root = root
	return s.err
}

type stubAsk struct {
	answer   *domain.Answer
	err      error
	question string
}

func (s *stubAsk) Ask(_ context.Context, question string) (*domain.Answer, error) {
	s.question = question
	return s.answer, s.err
}

// setupTestServices installs services backed by an in-memory index holding
// one chunk per text, and restores the previous state when the test ends.
func setupTestServices(t *testing.T, texts ...string) *Services {
	t.Helper()

	store := memory.NewIndexStore()
	if len(texts) > 0 {
		idx := &domain.Index{}
		for i, text := range texts {
			name := fmt.Sprintf("note%d.md", i+1)
			idx.Chunks = append(idx.Chunks, domain.Chunk{
				ID: fmt.Sprintf("c%d", i+1), Title: name, Path: "notes/" + name, Text: text,
			})
		}
		require.NoError(t, store.Save(context.Background(), idx))
	}

	s := &Services{
		Settings:    domain.DefaultSettings(),
		ConfigStore: memory.NewConfigStore(),
		Search:      coreservices.NewSearchService(store, retrieval.DefaultParams(), 0),
	}
	s.Settings.Index.Path = "/tmp/quarry/index.json"

	prev := services
	SetServices(s)
	t.Cleanup(func() { SetServices(prev) })
	return s
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	searchLimit, searchNormalise, searchFormat = 0, false, formatText
	statusFormat, askFormat = formatText, formatText
	ingestWatch, configInitForce = false, false
	verbose, configPath = false, ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestSetServices_NilResets(t *testing.T) {
	setupTestServices(t)

	SetServices(nil)

	assert.Nil(t, searchService)
	assert.Nil(t, configStore)
	assert.Equal(t, domain.Settings{}, settings)
}

func TestInitServices_UsesBootstrap(t *testing.T) {
	prevServices, prevBootstrap := services, bootstrap
	t.Cleanup(func() {
		SetServices(prevServices)
		bootstrap = prevBootstrap
	})
	SetServices(nil)

	var got Options
	closed := false
	SetBootstrap(func(opts Options) (*Services, error) {
		got = opts
		return &Services{
			Settings: domain.DefaultSettings(),
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})

	_, err := run(t, "version", "--config", "/etc/quarry.toml", "-v")

	require.NoError(t, err)
	assert.Equal(t, "/etc/quarry.toml", got.ConfigPath)
	assert.True(t, got.Verbose)
	require.NotNil(t, services)

	closeServices()
	assert.True(t, closed)
}

func TestInitServices_BootstrapError(t *testing.T) {
	prevServices, prevBootstrap := services, bootstrap
	t.Cleanup(func() {
		SetServices(prevServices)
		bootstrap = prevBootstrap
	})
	SetServices(nil)
	SetBootstrap(func(Options) (*Services, error) { return nil, errors.New("bad config") })

	_, err := run(t, "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialise: bad config")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"invalid input", fmt.Errorf("wrap: %w", domain.ErrInvalidInput), 2},
		{"usage", fmt.Errorf("%w: bad flag", errUsage), 2},
		{"other", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestCommands_NotConfigured(t *testing.T) {
	prev := services
	t.Cleanup(func() { SetServices(prev) })
	SetServices(&Services{})

	tests := [][]string{
		{"search", "x"},
		{"status"},
		{"ask", "why"},
		{"ingest", "dir"},
		{"ingest", "dir", "--watch"},
		{"config", "path"},
		{"tui"},
	}

	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			_, err := run(t, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}
