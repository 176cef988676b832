package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json or yaml)", errUsage, format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: format %q is not structured", errUsage, format)
	}
}

// resultOutput is one ranked chunk in structured output.
type resultOutput struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Path  string  `json:"path" yaml:"path"`
	Score float64 `json:"score" yaml:"score"`
	Text  string  `json:"text" yaml:"text"`
}

// searchOutput is the structured form of a search response.
type searchOutput struct {
	HasIndex   bool           `json:"hasIndex" yaml:"hasIndex"`
	Normalised bool           `json:"normalised" yaml:"normalised"`
	Results    []resultOutput `json:"results" yaml:"results"`
}

// sourceOutput is one answer source in structured output.
type sourceOutput struct {
	Title string  `json:"title" yaml:"title"`
	Path  string  `json:"path" yaml:"path"`
	Score float64 `json:"score" yaml:"score"`
}

// answerOutput is the structured form of an answer.
type answerOutput struct {
	Answer  string         `json:"answer" yaml:"answer"`
	Sources []sourceOutput `json:"sources" yaml:"sources"`
}

func toSearchOutput(resp *domain.SearchResponse) searchOutput {
	out := searchOutput{
		HasIndex:   resp.Present,
		Normalised: resp.Normalised,
		Results:    make([]resultOutput, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, resultOutput{
			ID:    r.Chunk.ID,
			Title: r.Chunk.Title,
			Path:  r.Chunk.Path,
			Score: r.Score,
			Text:  r.Chunk.Text,
		})
	}
	return out
}

func toAnswerOutput(answer *domain.Answer) answerOutput {
	out := answerOutput{
		Answer:  answer.Text,
		Sources: make([]sourceOutput, 0, len(answer.Sources)),
	}
	for _, s := range answer.Sources {
		out.Sources = append(out.Sources, sourceOutput{
			Title: s.Chunk.Title,
			Path:  s.Chunk.Path,
			Score: s.Score,
		})
	}
	return out
}

// snippet returns the first line of text, cut to limit runes.
func snippet(text string, limit int) string {
	for i, r := range text {
		if r == '\n' {
			text = text[:i]
			break
		}
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
