package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/logger"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Build the index from a directory",
	Long: `Walks a directory for .txt and .md files, splits them into
overlapping chunks and replaces the index snapshot.

The directory defaults to QUARRY_CORPUS_DIR, then APPLICATIONS_DIR,
then corpus.root from the config file.

With --watch the index is rebuilt whenever files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "rebuild the index when files change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := settings.Corpus.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		return fmt.Errorf("%w: corpus directory required (pass [dir] or set QUARRY_CORPUS_DIR)", errUsage)
	}

	if ingestWatch {
		if watcher == nil {
			return errNotConfigured("watch")
		}
		cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)
		return watcher.Run(cmd.Context(), root)
	}

	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	report, err := ingestService.Ingest(cmd.Context(), root)
	logger.EndProgress()
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	printIngestReport(cmd.OutOrStdout(), report)
	return nil
}

// IngestObserver returns a callback that prints the outcome of each
// ingestion run, for use with the watcher.
func IngestObserver(w io.Writer) func(*domain.IngestReport, error) {
	return func(report *domain.IngestReport, err error) {
		logger.EndProgress()
		if err != nil {
			fmt.Fprintf(w, "[%s] ingestion failed: %v\n", time.Now().Format(time.TimeOnly), err)
			return
		}
		printIngestReport(w, report)
	}
}

func printIngestReport(w io.Writer, report *domain.IngestReport) {
	fmt.Fprintf(w, "Wrote %d chunks to %s\n", report.Chunks, report.Output)
	if report.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d of %d files\n", report.Skipped, report.Files)
	}
}
