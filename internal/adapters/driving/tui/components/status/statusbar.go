// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateAsking    State = "asking"
	StateResults   State = "results"
	StateNoIndex   State = "no-index"
	StateError     State = "error"
)

// Bar displays index readiness, activity and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	summary     domain.IndexSummary
	width       int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders state on the left and hints on the right.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()
	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateAsking:
		return s.styles.Muted.Render("Asking...")
	case StateNoIndex:
		return s.styles.Warning.Render("No index found")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.resultCount))
	case StateReady:
	}
	if s.summary.Present {
		return s.styles.Muted.Render(fmt.Sprintf("%d chunks from %d documents", s.summary.Chunks, s.summary.Docs))
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	}
	return s.styles.Help.Render(Hints(bindings))
}

// Hints formats bindings as "key: desc" pairs separated by bars.
func Hints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}

func (s *Bar) SetState(state State) { s.state = state }

func (s *Bar) State() State { return s.state }

func (s *Bar) SetMessage(message string) { s.message = message }

func (s *Bar) Message() string { return s.message }

func (s *Bar) SetResultCount(count int) { s.resultCount = count }

func (s *Bar) ResultCount() int { return s.resultCount }

// SetSummary records the index size shown while idle.
func (s *Bar) SetSummary(summary domain.IndexSummary) { s.summary = summary }

func (s *Bar) SetWidth(width int) { s.width = width }

// Clear returns the bar to the ready state, keeping the index summary.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
