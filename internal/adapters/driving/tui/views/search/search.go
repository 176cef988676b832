// Package search provides the query and results view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driving"
)

// noIndexHint is shown when searching before any ingestion.
const noIndexHint = "No index found. Run 'quarry ingest <dir>' first."

// View is the search input and ranked result list.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	input         *input.Prompt
	list          *list.ResultList
	statusbar     *status.Bar
	searchService driving.SearchService
	copy          func(string) error

	ctx        context.Context
	width      int
	height     int
	ready      bool
	err        error
	noIndex    bool
	query      string
	focusInput bool
}

// NewView creates a search view. It returns ErrNoSearchService when
// searchService is nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) (*View, error) {
	if searchService == nil {
		return nil, ErrNoSearchService
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewPrompt(s, "Search:", "Enter search query..."),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		copy:          clipboard.WriteAll,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}, nil
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithCopier replaces the clipboard writer used by the copy binding.
func (v *View) WithCopier(fn func(string) error) *View {
	v.copy = fn
	return v
}

// Init starts the cursor and loads the index summary.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadStatus())
}

func (v *View) loadStatus() tea.Cmd {
	return func() tea.Msg {
		return messages.StatusLoaded{Summary: v.searchService.Status(v.ctx)}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StatusLoaded:
		v.statusbar.SetSummary(msg.Summary)
		return v, nil

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case msg.Type == tea.KeyEsc:
		v.focusInput = true
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Preview):
		if r := v.list.SelectedResult(); r != nil {
			result := *r
			return v, func() tea.Msg { return messages.ResultSelected{Result: result} }
		}
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		v.input.Reset()
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Ask):
		return v, changeView(messages.ViewAsk)
	case msg.String() == "y":
		v.copySelected()
	case keymap.Matches(msg.String(), v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, tea.Quit
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return v, changeView(messages.ViewMenu)
	case tea.KeyEnter:
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.query = query
		v.err = nil
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(query)
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

func (v *View) copySelected() {
	r := v.list.SelectedResult()
	if r == nil || v.copy == nil {
		return
	}
	if err := v.copy(r.Chunk.Text); err != nil {
		v.setError(err)
		return
	}
	v.statusbar.SetMessage("Copied " + r.Chunk.Path)
}

// performSearch ranks query with the service's default limit.
func (v *View) performSearch(query string) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		resp, err := v.searchService.Search(ctx, query, domain.SearchOptions{})
		return messages.SearchCompleted{Query: query, Response: resp, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.list.SetResults(nil)
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.noIndex = msg.Response == nil || !msg.Response.Present
	if v.noIndex {
		v.list.SetResults(nil)
		v.statusbar.SetState(status.StateNoIndex)
		return
	}

	v.list.SetResults(msg.Response.Results)
	v.statusbar.SetResultCount(len(msg.Response.Results))
	v.statusbar.SetState(status.StateResults)
	if len(msg.Response.Results) > 0 {
		v.focusInput = false
		v.input.Blur()
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(errorText(err))
}

func errorText(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return "query required"
	}
	return err.Error()
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Quarry"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + errorText(v.err)))
	case v.noIndex:
		b.WriteString(v.styles.Warning.Render(noIndexHint))
	case v.query != "" && v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("No results found."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

// SetDimensions sizes the view and its components.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height-10, 3))
	v.statusbar.SetWidth(width)
}

func (v *View) Ready() bool { return v.ready }

// Query returns the last submitted query.
func (v *View) Query() string { return v.query }

// Results returns the results currently listed.
func (v *View) Results() []domain.ScoredResult { return v.list.Results() }

// SelectedIndex returns the list selection.
func (v *View) SelectedIndex() int { return v.list.Selected() }

// InputFocused reports whether keys go to the query input.
func (v *View) InputFocused() bool { return v.focusInput }

// Err returns the last error shown, if any.
func (v *View) Err() error { return v.err }

// Reset clears the query, results and errors and refocuses the input.
func (v *View) Reset() tea.Cmd {
	v.input.Reset()
	v.list.SetResults(nil)
	v.statusbar.Clear()
	v.err = nil
	v.noIndex = false
	v.query = ""
	v.focusInput = true
	return tea.Batch(v.input.Focus(), v.loadStatus())
}
