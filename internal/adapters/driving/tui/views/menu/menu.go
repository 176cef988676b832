// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// Item is a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	summary  domain.IndexSummary
	ready    bool
}

// NewView creates the main menu.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Search", View: messages.ViewSearch},
			{Label: "Ask", View: messages.ViewAsk},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.ready = true

	case messages.StatusLoaded:
		v.summary = msg.Summary

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.selected = max(v.selected-1, 0)
		case "down", "j":
			v.selected = min(v.selected+1, len(v.items)-1)
		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg { return messages.ViewChanged{View: item.View} }
		case "q":
			return v, tea.Quit
		}
	}
	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Quarry"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Lexical document search"))
	b.WriteString("\n")
	b.WriteString(v.renderIndex())
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return b.String()
}

func (v *View) renderIndex() string {
	if !v.summary.Present {
		return v.styles.Warning.Render("No index found. Run 'quarry ingest <dir>' first.")
	}
	return v.styles.Success.Render(
		fmt.Sprintf("Index ready: %d chunks from %d documents", v.summary.Chunks, v.summary.Docs))
}

// SetDimensions marks the menu ready to render.
func (v *View) SetDimensions(int, int) {
	v.ready = true
}

// Selected returns the highlighted item index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
