package driving

import (
	"context"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

// AskService answers questions from the highest-ranked chunks.
type AskService interface {
	// Ask retrieves context for question and asks the language model.
	// It fails with domain.ErrInvalidInput for questions under three
	// characters, domain.ErrIndexAbsent when there is nothing to retrieve
	// from, and domain.ErrLLMUnavailable when no model is configured.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
