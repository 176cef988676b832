// Package ask provides the question-answering view for the TUI.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
)

// View takes a question and shows the model's answer with its sources.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	input   *input.Prompt
	spinner spinner.Model
	service driving.AskService

	ctx      context.Context
	question string
	answer   *domain.Answer
	asking   bool
	width    int
	height   int
	err      error
}

// NewView creates an ask view. service may be nil, in which case every
// question reports the model as unconfigured.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.AskService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:  s,
		keymap:  km,
		input:   input.NewPrompt(s, "Ask:", "Ask a question about your documents..."),
		spinner: sp,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context questions run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.asking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnswerReceived:
		if msg.Question != v.question {
			return v, nil
		}
		v.asking = false
		v.answer = msg.Answer
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	case tea.KeyEnter:
		if v.asking {
			return v, nil
		}
		return v, v.submit(v.input.Value())
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

// submit sends question to the ask service. Validation of the question
// is left to the service.
func (v *View) submit(question string) tea.Cmd {
	v.question = question
	v.answer = nil
	v.err = nil

	if v.service == nil {
		v.err = domain.ErrLLMUnavailable
		return nil
	}

	v.asking = true
	ctx, svc := v.ctx, v.service
	ask := func() tea.Msg {
		answer, err := svc.Ask(ctx, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
	return tea.Batch(v.spinner.Tick, ask)
}

// errorText turns service errors into guidance for the user.
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Question required (at least 3 characters)."
	case errors.Is(err, domain.ErrIndexAbsent):
		return "No index found. Run 'quarry ingest <dir>' first."
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Sprintf("Language model not configured. Set %s.", domain.DefaultAPIKeyEnv)
	case errors.Is(err, domain.ErrRateLimited):
		return "The language model is rate limited. Try again shortly."
	default:
		return "Error: " + err.Error()
	}
}

// View renders the ask view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Ask"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.asking:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Thinking..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	case v.answer != nil:
		b.WriteString(v.renderAnswer())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("enter: ask | esc: back"))
	return b.String()
}

func (v *View) renderAnswer() string {
	var b strings.Builder
	b.WriteString(v.styles.Answer.Width(max(v.width-4, 20)).Render(v.answer.Text))
	if len(v.answer.Sources) == 0 {
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Sources"))
	for _, src := range v.answer.Sources {
		b.WriteString("\n  ")
		b.WriteString(v.styles.Normal.Render(src.Chunk.Title))
		b.WriteString(" ")
		b.WriteString(v.styles.Path.Render("(" + src.Chunk.Path + ")"))
		b.WriteString(" ")
		b.WriteString(v.styles.Score.Render(fmt.Sprintf("%.3f", src.Score)))
	}
	return b.String()
}

// SetDimensions sizes the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Asking reports whether a question is in flight.
func (v *View) Asking() bool { return v.asking }

// Answer returns the last answer, or nil.
func (v *View) Answer() *domain.Answer { return v.answer }

// Err returns the last error, if any.
func (v *View) Err() error { return v.err }
