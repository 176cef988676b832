package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

var askFormat string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the index",
	Long: `Retrieves the most relevant chunks for a question and asks the
configured language model to answer using only those chunks.

Requires ANTHROPIC_API_KEY (or the variable named by llm.api_key_env).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := validateFormat(askFormat); err != nil {
		return err
	}
	if askService == nil {
		return errNotConfigured("ask")
	}

	answer, err := askService.Ask(cmd.Context(), strings.Join(args, " "))
	switch {
	case errors.Is(err, domain.ErrIndexAbsent):
		return errors.New("no index found, run 'quarry ingest <dir>' first")
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Errorf("%w: set %s", err, settings.LLM.APIKeyEnv)
	case err != nil:
		return fmt.Errorf("ask failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if askFormat != formatText {
		return writeStructured(out, askFormat, toAnswerOutput(answer))
	}

	fmt.Fprintln(out, answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sources:")
		for _, s := range answer.Sources {
			fmt.Fprintf(out, "  - %s (%s) %.3f\n", s.Chunk.Title, s.Chunk.Path, s.Score)
		}
	}
	return nil
}
