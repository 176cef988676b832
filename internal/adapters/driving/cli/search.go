package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

var (
	searchLimit     int
	searchNormalise bool
	searchFormat    string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index",
	Long: `Ranks every indexed chunk against the query with BM25 and prints
the best matches.

Scores are raw BM25 values unless --normalise is given, in which case
they are divided by the top score.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default retrieval.top_k)")
	searchCmd.Flags().BoolVar(&searchNormalise, "normalise", false, "scale scores so the top result is 1")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(searchFormat); err != nil {
		return err
	}
	if searchService == nil {
		return errNotConfigured("search")
	}

	resp, err := searchService.Search(cmd.Context(), args[0], domain.SearchOptions{
		Limit:     searchLimit,
		Normalise: searchNormalise,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), searchFormat, toSearchOutput(resp))
	}
	return outputSearchText(cmd, resp)
}

func outputSearchText(cmd *cobra.Command, resp *domain.SearchResponse) error {
	out := cmd.OutOrStdout()
	if !resp.Present {
		fmt.Fprintln(out, "No index found. Run 'quarry ingest <dir>' first.")
		return nil
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintln(out, "Results:")
	fmt.Fprintln(out)
	for i, r := range resp.Results {
		fmt.Fprintf(out, "  [%d] %s (%.3f)\n", i+1, r.Chunk.Title, r.Score)
		fmt.Fprintf(out, "      %s\n", r.Chunk.Path)
		if s := snippet(r.Chunk.Text, 100); s != "" {
			fmt.Fprintf(out, "      %s\n", s)
		}
		fmt.Fprintln(out)
	}
	return nil
}
