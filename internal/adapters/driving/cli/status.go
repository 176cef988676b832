package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an index exists",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(statusFormat); err != nil {
		return err
	}
	if searchService == nil {
		return errNotConfigured("search")
	}

	out := cmd.OutOrStdout()
	summary := searchService.Status(cmd.Context())
	if statusFormat != formatText {
		return writeStructured(out, statusFormat, summary)
	}

	if !summary.Present {
		fmt.Fprintln(out, "No index found. Run 'quarry ingest <dir>' first.")
		return nil
	}
	fmt.Fprintf(out, "Index: %d chunks from %d documents\n", summary.Chunks, summary.Docs)
	if settings.Index.Path != "" {
		fmt.Fprintf(out, "Path:  %s\n", settings.Index.Path)
	}
	return nil
}
