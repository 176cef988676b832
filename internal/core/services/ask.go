package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
	"github.com/custodia-labs/quarry/internal/core/retrieval"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Ensure AskService implements the interfaces.
var (
	_ driving.AskService      = (*AskService)(nil)
	_ driven.PromptStoreAware = (*AskService)(nil)
)

// minQuestionLength is the shortest accepted question, in characters.
const minQuestionLength = 3

// AskService answers questions from retrieved chunks with a language model.
type AskService struct {
	search  driving.SearchService
	llm     driven.LLMService
	prompts driven.PromptStore
	limit   int
	opts    driven.ChatOptions
}

// NewAskService creates an ask service. llm may be nil, in which case Ask
// reports domain.ErrLLMUnavailable.
func NewAskService(
	search driving.SearchService,
	llm driven.LLMService,
	limit int,
	opts driven.ChatOptions,
) *AskService {
	if limit <= 0 {
		limit = domain.DefaultTopK
	}
	return &AskService{
		search: search,
		llm:    llm,
		limit:  limit,
		opts:   opts,
	}
}

// SetPromptStore overrides the built-in prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Ask ranks the index against question, sends the top chunks as context
// and returns the model's answer with normalised source scores.
func (s *AskService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Ask")

	question = strings.TrimSpace(question)
	if len([]rune(question)) < minQuestionLength {
		return nil, fmt.Errorf("%w: question required", domain.ErrInvalidInput)
	}

	resp, err := s.search.Search(ctx, question, domain.SearchOptions{Limit: s.limit})
	if err != nil {
		return nil, err
	}
	if !resp.Present {
		return nil, domain.ErrIndexAbsent
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	userPrompt := s.prompt(driven.PromptAskUser, domain.AskUserPrompt)
	if !HasAskPlaceholders(userPrompt) {
		logger.Warn("Prompt %s is missing %s or %s, using default",
			driven.PromptAskUser, domain.PromptQuestion, domain.PromptContext)
		userPrompt = domain.AskUserPrompt
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.prompt(driven.PromptAskSystem, domain.AskSystemPrompt)},
		{Role: "user", Content: RenderAskPrompt(userPrompt, question, BuildContext(resp.Results))},
	}

	logger.Debug("Asking %s with %d sources", s.llm.ModelName(), len(resp.Results))
	text, err := s.llm.Chat(ctx, messages, s.opts)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: retrieval.NormaliseScores(resp.Results),
	}, nil
}

func (s *AskService) prompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	p, err := s.prompts.Load(name)
	if err != nil || p == "" {
		logger.Debug("Prompt %s unavailable, using default: %v", name, err)
		return fallback
	}
	return p
}

// HasAskPlaceholders reports whether template carries both the question
// and context placeholders.
func HasAskPlaceholders(template string) bool {
	return strings.Contains(template, domain.PromptQuestion) &&
		strings.Contains(template, domain.PromptContext)
}

// RenderAskPrompt substitutes question and contextBlock into template in a single
// pass, so placeholder text inside either value is left alone.
func RenderAskPrompt(template, question, contextBlock string) string {
	return strings.NewReplacer(
		domain.PromptQuestion, question,
		domain.PromptContext, contextBlock,
	).Replace(template)
}

// BuildContext renders results as "Source: <title> (<path>)" blocks
// separated by blank lines.
func BuildContext(results []domain.ScoredResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("Source: %s (%s)\n---\n%s", r.Chunk.Title, r.Chunk.Path, r.Chunk.Text)
	}
	return strings.Join(blocks, "\n\n")
}
