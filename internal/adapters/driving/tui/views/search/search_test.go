package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
	Summary    domain.IndexSummary
}

func (m *MockSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &domain.SearchResponse{}, nil
}

func (m *MockSearchService) Status(context.Context) domain.IndexSummary {
	return m.Summary
}

func testResults() []domain.ScoredResult {
	return []domain.ScoredResult{
		{Chunk: domain.Chunk{ID: "1", Title: "guide.md", Path: "docs/guide.md", Text: "install the guide"}, Score: 3.2},
		{Chunk: domain.Chunk{ID: "2", Title: "faq.md", Path: "docs/faq.md", Text: "frequently asked"}, Score: 1.1},
	}
}

func present(results []domain.ScoredResult) *MockSearchService {
	return &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) (*domain.SearchResponse, error) {
			return &domain.SearchResponse{Present: true, Results: results}, nil
		},
	}
}

func newTestView(t *testing.T, svc *MockSearchService) *View {
	t.Helper()
	v, err := NewView(nil, nil, svc)
	require.NoError(t, err)
	v.SetDimensions(100, 30)
	return v
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submit types query, presses enter and feeds the command's message back.
func submit(t *testing.T, v *View, query string) {
	t.Helper()
	v.input.SetValue(query)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView_RequiresSearchService(t *testing.T) {
	v, err := NewView(nil, nil, nil)

	assert.ErrorIs(t, err, ErrNoSearchService)
	assert.Nil(t, v)
}

func TestView_InitLoadsStatus(t *testing.T) {
	svc := &MockSearchService{Summary: domain.IndexSummary{Present: true, Chunks: 9, Docs: 2}}
	v := newTestView(t, svc)

	cmd := v.loadStatus()
	v.Update(cmd())

	assert.NotNil(t, v.Init())
	assert.Contains(t, v.View(), "9 chunks from 2 documents")
}

func TestView_NotReady(t *testing.T) {
	v, err := NewView(nil, nil, &MockSearchService{})
	require.NoError(t, err)

	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_SubmitSearch(t *testing.T) {
	var gotQuery string
	var gotOpts domain.SearchOptions
	svc := &MockSearchService{
		SearchFunc: func(_ context.Context, q string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
			gotQuery, gotOpts = q, opts
			return &domain.SearchResponse{Present: true, Results: testResults()}, nil
		},
	}
	v := newTestView(t, svc)

	submit(t, v, "  install guide ")

	assert.Equal(t, "install guide", gotQuery)
	assert.Equal(t, domain.SearchOptions{}, gotOpts)
	assert.Equal(t, "install guide", v.Query())
	assert.Len(t, v.Results(), 2)
	assert.False(t, v.InputFocused())
	view := v.View()
	assert.Contains(t, view, "guide.md")
	assert.Contains(t, view, "2 results")
}

func TestView_BlankQueryIgnored(t *testing.T) {
	v := newTestView(t, &MockSearchService{})
	v.input.SetValue("   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_NoIndex(t *testing.T) {
	v := newTestView(t, &MockSearchService{})

	submit(t, v, "anything")

	assert.Empty(t, v.Results())
	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "No index found")
}

func TestView_NoResults(t *testing.T) {
	v := newTestView(t, present(nil))

	submit(t, v, "zebra")

	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "No results found.")
}

func TestView_SearchError(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) (*domain.SearchResponse, error) {
			return nil, errors.New("snapshot corrupt")
		},
	}
	v := newTestView(t, svc)

	submit(t, v, "q")

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "Error: snapshot corrupt")
}

func TestView_ResultsNavigationAndPreview(t *testing.T) {
	v := newTestView(t, present(testResults()))
	submit(t, v, "guide")

	v.Update(key("j"))
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ResultSelected)
	require.True(t, ok)
	assert.Equal(t, "2", msg.Result.Chunk.ID)
}

func TestView_ResultsKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want messages.ViewType
	}{
		{"ask", key("a"), messages.ViewAsk},
		{"help", key("?"), messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(t, present(testResults()))
			submit(t, v, "guide")

			_, cmd := v.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_NewSearchRefocusesInput(t *testing.T) {
	v := newTestView(t, present(testResults()))
	submit(t, v, "guide")

	v.Update(key("/"))

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.input.Value())
}

func TestView_EscFromInputGoesToMenu(t *testing.T) {
	v := newTestView(t, &MockSearchService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_EscFromResultsRefocusesInput(t *testing.T) {
	v := newTestView(t, present(testResults()))
	submit(t, v, "guide")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, v.InputFocused())
	assert.Equal(t, "guide", v.input.Value())
}

func TestView_CopySelected(t *testing.T) {
	v := newTestView(t, present(testResults()))
	var copied string
	v.WithCopier(func(s string) error {
		copied = s
		return nil
	})
	submit(t, v, "guide")

	v.Update(key("y"))

	assert.Equal(t, "install the guide", copied)
	assert.Contains(t, v.statusbar.Message(), "docs/guide.md")
}

func TestView_CopyFailure(t *testing.T) {
	v := newTestView(t, present(testResults()))
	v.WithCopier(func(string) error { return errors.New("no clipboard") })
	submit(t, v, "guide")

	v.Update(key("y"))

	assert.EqualError(t, v.Err(), "no clipboard")
}

func TestView_Reset(t *testing.T) {
	v := newTestView(t, present(testResults()))
	submit(t, v, "guide")

	cmd := v.Reset()

	assert.NotNil(t, cmd)
	assert.Empty(t, v.Query())
	assert.Empty(t, v.Results())
	assert.True(t, v.InputFocused())
	assert.NoError(t, v.Err())
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(t, &MockSearchService{})

	v.Update(messages.ErrorOccurred{Err: domain.ErrInvalidInput})

	assert.Contains(t, v.View(), "query required")
}
