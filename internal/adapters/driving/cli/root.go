// Package cli implements the quarry command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Options are the global flags handed to the bootstrap function.
type Options struct {
	// ConfigPath is the --config flag value. Empty means the default.
	ConfigPath string

	// Verbose enables debug logging.
	Verbose bool

	// Out receives command output.
	Out io.Writer
}

// Services are the application services the commands drive.
type Services struct {
	Settings    domain.Settings
	ConfigStore driven.ConfigStore
	Search      driving.SearchService
	Ingest      driving.IngestService
	Ask         driving.AskService
	Watcher     driving.Watcher

	// CheckLLM verifies the answer model is configured and reachable.
	CheckLLM func(ctx context.Context) error

	// ResolvePath maps a chunk path to a file on disk.
	ResolvePath func(chunkPath string) string

	// Close releases resources held by the services.
	Close func() error
}

// BootstrapFunc builds the services once global flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	version = "dev"

	verbose    bool
	configPath string

	bootstrap BootstrapFunc
	services  *Services

	settings      domain.Settings
	configStore   driven.ConfigStore
	searchService driving.SearchService
	ingestService driving.IngestService
	askService    driving.AskService
	watcher       driving.Watcher
)

var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Lexical search over a folder of notes",
	Long: `Quarry chunks the .txt and .md files under a directory into a
searchable index and ranks them with BM25.

Build the index with 'quarry ingest <dir>', then query it with
'quarry search', 'quarry ask', the HTTP API ('quarry serve'),
the MCP server ('quarry mcp serve') or the terminal UI ('quarry tui').`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.quarry/config.toml)")
}

// SetVersion sets the version reported by 'quarry version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services after flags
// are parsed.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
	if s == nil {
		settings = domain.Settings{}
		configStore = nil
		searchService = nil
		ingestService = nil
		askService = nil
		watcher = nil
		return
	}
	settings = s.Settings
	configStore = s.ConfigStore
	searchService = s.Search
	ingestService = s.Ingest
	askService = s.Ask
	watcher = s.Watcher
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || services != nil {
		return nil
	}

	s, err := bootstrap(Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func closeServices() {
	if services == nil || services.Close == nil {
		return
	}
	if err := services.Close(); err != nil {
		logger.Warn("close: %v", err)
	}
}

// errNotConfigured reports a command run without its service wired.
func errNotConfigured(name string) error {
	return fmt.Errorf("%s service not configured", name)
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

var errUsage = errors.New("usage")
