package preview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

func result(text string) domain.ScoredResult {
	return domain.ScoredResult{
		Chunk: domain.Chunk{ID: "c1", Title: "notes.md", Path: "docs/notes.md", Text: text},
		Score: 0.75,
	}
}

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_NothingSelected(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Nil(t, v.Init())
	assert.Nil(t, v.Result())
	assert.Contains(t, v.View(), "Nothing selected")
}

func TestView_RendersChunk(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	v.SetResult(result("BM25 ranks chunks"))

	view := v.View()
	assert.Contains(t, view, "notes.md")
	assert.Contains(t, view, "docs/notes.md")
	assert.Contains(t, view, "0.750")
	assert.Contains(t, view, "[chunk]")
	assert.Contains(t, view, "BM25 ranks chunks")
}

func TestView_Scrolling(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 17)
	v.SetResult(result(manyLines(30)))

	v.Update(key("j"))
	assert.Equal(t, 1, v.ScrollOffset())

	v.Update(key("k"))
	v.Update(key("k"))
	assert.Equal(t, 0, v.ScrollOffset())

	v.Update(key("G"))
	assert.Equal(t, 20, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 20, v.ScrollOffset())

	v.Update(key("g"))
	assert.Equal(t, 0, v.ScrollOffset())
	assert.Contains(t, v.View(), "Line 1-10 of 30")
}

func TestView_BackReturnsToSearch(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_ToggleSource(t *testing.T) {
	var reads []string
	v := NewView(nil, nil, func(path string) (string, error) {
		reads = append(reads, path)
		return "whole document", nil
	})
	v.SetDimensions(80, 24)
	v.SetResult(result("just the chunk"))

	_, cmd := v.Update(key("f"))
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading document...")

	v.Update(cmd())
	assert.True(t, v.ShowingSource())
	assert.Contains(t, v.View(), "whole document")
	assert.Contains(t, v.View(), "[document]")

	_, cmd = v.Update(key("f"))
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "just the chunk")

	_, cmd = v.Update(key("f"))
	assert.Nil(t, cmd, "document is cached")
	assert.Equal(t, []string{"docs/notes.md"}, reads)
}

func TestView_ToggleSourceWithoutReader(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetResult(result("chunk"))

	_, cmd := v.Update(key("f"))

	assert.Nil(t, cmd)
	assert.False(t, v.ShowingSource())
	assert.ErrorIs(t, v.Err(), ErrNoSourceReader)
}

func TestView_SourceLoadError(t *testing.T) {
	v := NewView(nil, nil, func(string) (string, error) { return "", errors.New("gone") })
	v.SetResult(result("chunk"))

	_, cmd := v.Update(key("f"))
	v.Update(cmd())

	assert.False(t, v.ShowingSource())
	assert.EqualError(t, v.Err(), "gone")
	assert.Contains(t, v.View(), "Error: gone")
}

func TestView_StaleSourceIgnored(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetResult(result("chunk"))

	v.Update(messages.SourceLoaded{Path: "other.md", Content: "other"})

	assert.NotContains(t, v.View(), "other")
}

func TestView_SetResultResetsState(t *testing.T) {
	v := NewView(nil, nil, func(string) (string, error) { return "doc", nil })
	v.SetDimensions(80, 17)
	v.SetResult(result(manyLines(30)))
	v.Update(key("G"))
	_, cmd := v.Update(key("f"))
	v.Update(cmd())

	v.SetResult(result("fresh"))

	assert.Zero(t, v.ScrollOffset())
	assert.False(t, v.ShowingSource())
	assert.NoError(t, v.Err())
}
