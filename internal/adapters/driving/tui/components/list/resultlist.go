// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 3

// ResultList displays ranked chunks in a navigable list.
type ResultList struct {
	results  []domain.ScoredResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update moves the selection on arrow and j/k keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))))
	b.WriteString("\n\n")

	visible := (r.height - 2) / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	for i := start; i < end; i++ {
		b.WriteString(r.renderResult(i, &r.results[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderResult formats one result as a title line, path line and preview.
func (r *ResultList) renderResult(index int, result *domain.ScoredResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := result.Chunk.Title
	if title == "" {
		title = "(untitled)"
	}
	titleWidth := max(r.width-16, 10)
	title = Truncate(title, titleWidth)
	score := fmt.Sprintf("%.3f", result.Score)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, titleWidth, title, score))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, titleWidth, title)) +
			r.styles.Score.Render(score)
	}

	previewWidth := max(r.width-6, 20)
	pathLine := r.styles.Path.Render("    " + Truncate(result.Chunk.Path, previewWidth))
	previewLine := r.styles.Muted.Render("    " + Truncate(Flatten(result.Chunk.Text), previewWidth))

	return titleLine + "\n" + pathLine + "\n" + previewLine
}

// SetResults replaces the results and resets the selection.
func (r *ResultList) SetResults(results []domain.ScoredResult) {
	r.results = results
	r.selected = 0
}

func (r *ResultList) Results() []domain.ScoredResult {
	return r.results
}

func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected moves the selection to index when it is in range.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the selected result, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.ScoredResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

func (r *ResultList) Count() int {
	return len(r.results)
}

func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}

// Truncate shortens s to at most width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Flatten collapses runs of whitespace, including newlines, to single spaces.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
