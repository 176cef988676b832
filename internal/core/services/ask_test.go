package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/core/retrieval"
)

func newAsk(t *testing.T, llm driven.LLMService, texts ...string) *AskService {
	t.Helper()
	store := memory.NewIndexStore()
	if len(texts) > 0 {
		store = seededStore(t, texts...)
	}
	search := NewSearchService(store, retrieval.DefaultParams(), 0)
	return NewAskService(search, llm, 0, driven.ChatOptions{MaxTokens: 600, Temperature: 0.2})
}

func TestAskService_Ask(t *testing.T) {
	llm := &mockLLM{reply: "  Three roles mention Go.\n"}
	svc := newAsk(t, llm, "golang engineer", "rust developer", "golang golang")

	answer, err := svc.Ask(context.Background(), "  which roles use golang?  ")

	require.NoError(t, err)
	assert.Equal(t, "Three roles mention Go.", answer.Text)
	require.Len(t, answer.Sources, 3)
	assert.Equal(t, "c", answer.Sources[0].Chunk.ID)
	assert.Equal(t, 1.0, answer.Sources[0].Score)
	assert.Equal(t, 0.0, answer.Sources[2].Score)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, domain.AskSystemPrompt, llm.messages[0].Content)
	assert.Equal(t, "user", llm.messages[1].Role)
	assert.Contains(t, llm.messages[1].Content, "Question: which roles use golang?\n\nContext:\n")
	assert.Contains(t, llm.messages[1].Content, "Source: c.md (apps/c.md)\n---\ngolang golang")
	assert.Equal(t, 600, llm.opts.MaxTokens)
	assert.Equal(t, 0.2, llm.opts.Temperature)
}

func TestAskService_ShortQuestion(t *testing.T) {
	llm := &mockLLM{reply: "unused"}
	svc := newAsk(t, llm, "golang")

	for _, q := range []string{"", "  ", "go", " hi "} {
		_, err := svc.Ask(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "question %q", q)
	}
	assert.Nil(t, llm.messages)
}

func TestAskService_NoIndex(t *testing.T) {
	llm := &mockLLM{reply: "unused"}

	_, err := newAsk(t, llm).Ask(context.Background(), "anything here?")

	assert.ErrorIs(t, err, domain.ErrIndexAbsent)
	assert.Nil(t, llm.messages)
}

func TestAskService_NoModel(t *testing.T) {
	_, err := newAsk(t, nil, "golang").Ask(context.Background(), "golang?")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAskService_ChatError(t *testing.T) {
	llm := &mockLLM{err: errors.New("upstream 500")}

	_, err := newAsk(t, llm, "golang").Ask(context.Background(), "golang?")

	assert.ErrorContains(t, err, "chat: upstream 500")
}

func TestAskService_PromptStore(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	svc := newAsk(t, llm, "golang")
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAskSystem: "Be brief.",
		driven.PromptAskUser:   "C={{context}} Q={{question}} 100%",
	}})

	_, err := svc.Ask(context.Background(), "golang?")

	require.NoError(t, err)
	assert.Equal(t, "Be brief.", llm.messages[0].Content)
	assert.Equal(t, "C=Source: a.md (apps/a.md)\n---\ngolang Q=golang? 100%", llm.messages[1].Content)
}

func TestAskService_PromptStoreMissingPlaceholders(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	svc := newAsk(t, llm, "golang")
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAskUser: "Q=%s C=%s %d",
	}})

	_, err := svc.Ask(context.Background(), "golang?")

	require.NoError(t, err)
	assert.Equal(t, "Question: golang?\n\nContext:\nSource: a.md (apps/a.md)\n---\ngolang", llm.messages[1].Content)
	assert.NotContains(t, llm.messages[1].Content, "%!")
}

func TestRenderAskPrompt(t *testing.T) {
	got := RenderAskPrompt("{{question}} / {{context}}", "what is {{context}}?", "ctx with {{question}}")

	assert.Equal(t, "what is {{context}}? / ctx with {{question}}", got)
	assert.True(t, HasAskPlaceholders(domain.AskUserPrompt))
	assert.False(t, HasAskPlaceholders("Question: %s"))
}

func TestAskService_PromptStoreFallback(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	svc := newAsk(t, llm, "golang")
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{}})

	_, err := svc.Ask(context.Background(), "golang?")

	require.NoError(t, err)
	assert.Equal(t, domain.AskSystemPrompt, llm.messages[0].Content)
}

func TestBuildContext(t *testing.T) {
	results := []domain.ScoredResult{
		{Chunk: domain.Chunk{Title: "a.md", Path: "x/a.md", Text: "first"}},
		{Chunk: domain.Chunk{Title: "b.md", Path: "x/b.md", Text: "second"}},
	}

	assert.Equal(t,
		"Source: a.md (x/a.md)\n---\nfirst\n\nSource: b.md (x/b.md)\n---\nsecond",
		BuildContext(results))
	assert.Empty(t, BuildContext(nil))
}
