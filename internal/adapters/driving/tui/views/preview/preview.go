// Package preview shows a ranked chunk, or its whole source document, in a
// scrollable pane.
package preview

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// ErrNoSourceReader is reported when the full document is requested but
// no reader was configured.
var ErrNoSourceReader = errors.New("source reader not available")

// reservedLines covers the title, path, separator and footer.
const reservedLines = 7

// View is the result preview.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	read   func(path string) (string, error)

	result       *domain.ScoredResult
	source       string
	showSource   bool
	loading      bool
	lines        []string
	scrollOffset int
	width        int
	height       int
	err          error
}

// NewView creates a preview view. read may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, read func(path string) (string, error)) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, read: read, width: 80, height: 24}
}

func (v *View) Init() tea.Cmd {
	return nil
}

// SetResult shows result's chunk text from the top.
func (v *View) SetResult(result domain.ScoredResult) {
	v.result = &result
	v.source = ""
	v.showSource = false
	v.loading = false
	v.err = nil
	v.scrollOffset = 0
	v.wrap()
}

// Update handles messages for the preview view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	case messages.SourceLoaded:
		v.loading = false
		if v.result == nil || msg.Path != v.result.Chunk.Path {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.showSource = false
			return v, nil
		}
		v.source = msg.Content
		v.wrap()
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Up):
		v.scroll(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.scroll(1)
	case keymap.Matches(k, v.keymap.PageUp):
		v.scroll(-v.visibleLines())
	case keymap.Matches(k, v.keymap.PageDown):
		v.scroll(v.visibleLines())
	case keymap.Matches(k, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(k, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	case k == "f":
		return v, v.toggleSource()
	}
	return v, nil
}

// toggleSource flips between the chunk and the whole document, loading the
// document on first use.
func (v *View) toggleSource() tea.Cmd {
	if v.result == nil {
		return nil
	}
	v.showSource = !v.showSource
	v.scrollOffset = 0
	v.err = nil
	if !v.showSource || v.source != "" {
		v.wrap()
		return nil
	}
	if v.read == nil {
		v.showSource = false
		v.err = ErrNoSourceReader
		return nil
	}

	v.loading = true
	path := v.result.Chunk.Path
	read := v.read
	return func() tea.Msg {
		content, err := read(path)
		return messages.SourceLoaded{Path: path, Content: content, Err: err}
	}
}

func (v *View) scroll(delta int) {
	v.scrollOffset = min(max(v.scrollOffset+delta, 0), v.maxScrollOffset())
}

func (v *View) wrap() {
	text := ""
	if v.result != nil {
		text = v.result.Chunk.Text
		if v.showSource {
			text = v.source
		}
	}
	if text == "" {
		v.lines = nil
		return
	}
	width := max(v.width-4, 20)
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	v.lines = strings.Split(wrapped, "\n")
}

func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the preview.
func (v *View) View() string {
	var b strings.Builder

	if v.result == nil {
		b.WriteString(v.styles.Muted.Render("Nothing selected"))
		return b.String()
	}

	mode := "chunk"
	if v.showSource {
		mode = "document"
	}
	b.WriteString(v.styles.Title.Render(v.result.Chunk.Title))
	b.WriteString("  ")
	b.WriteString(v.styles.Score.Render(fmt.Sprintf("%.3f", v.result.Score)))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("[" + mode + "]"))
	b.WriteString("\n")
	b.WriteString(v.styles.Path.Render(v.result.Chunk.Path))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(empty)"))
	default:
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		b.WriteString(v.styles.Normal.Render(strings.Join(v.lines[v.scrollOffset:end], "\n")))
		if len(v.lines) > v.visibleLines() {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
				v.scrollOffset+1, end, len(v.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(status.Hints(v.keymap.PreviewHelp()) + " | f: toggle document"))
	return b.String()
}

// SetDimensions sizes the view and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrap()
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Result returns the previewed result, or nil.
func (v *View) Result() *domain.ScoredResult { return v.result }

// ShowingSource reports whether the whole document is displayed.
func (v *View) ShowingSource() bool { return v.showSource }

// ScrollOffset returns the first visible line index.
func (v *View) ScrollOffset() int { return v.scrollOffset }

// Err returns the last error, if any.
func (v *View) Err() error { return v.err }
