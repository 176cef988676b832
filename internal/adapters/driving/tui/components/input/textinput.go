// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
)

// charLimit bounds queries and questions typed into a Prompt.
const charLimit = 512

// Prompt is a labelled single-line text input.
type Prompt struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewPrompt creates a focused prompt showing label before the input.
func NewPrompt(s *styles.Styles, label, placeholder string) *Prompt {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 50
	ti.Focus()

	return &Prompt{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (p *Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the underlying text input.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the label and the framed input side by side.
func (p *Prompt) View() string {
	label := p.styles.Title.Render(p.label + " ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

func (p *Prompt) Value() string { return p.textinput.Value() }

func (p *Prompt) SetValue(value string) { p.textinput.SetValue(value) }

func (p *Prompt) Focus() tea.Cmd { return p.textinput.Focus() }

func (p *Prompt) Blur() { p.textinput.Blur() }

func (p *Prompt) Focused() bool { return p.textinput.Focused() }

func (p *Prompt) Reset() { p.textinput.Reset() }

// SetWidth sizes the input to width minus the label and frame.
func (p *Prompt) SetWidth(width int) {
	p.width = width
	inner := width - lipgloss.Width(p.label) - 6
	if inner < 20 {
		inner = 20
	}
	p.textinput.Width = inner
}

// Width returns the width last given to SetWidth.
func (p *Prompt) Width() int {
	return p.width
}
