package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/quarry/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView    *menu.View
	searchView  *search.View
	previewView *preview.View
	askView     *ask.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// helpReturn is the view Esc goes back to from help.
	helpReturn messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	searchView, err := search.NewView(s, km, ports.Search)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		menuView:    menu.NewView(s),
		searchView:  searchView,
		previewView: preview.NewView(s, km, ports.ReadSource),
		askView:     ask.NewView(s, km, ports.Ask),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context service calls run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.askView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("quarry - document search"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateActive(msg)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.StatusLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ResultSelected:
		a.previewView.SetResult(msg.Result)
		a.currentView = messages.ViewPreview
		return a, nil

	case messages.SourceLoaded:
		a.previewView, cmd = a.previewView.Update(msg)
		return a, cmd

	case messages.AnswerReceived, spinner.TickMsg:
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateActive(msg)
}

// updateActive forwards msg to the current view.
func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewPreview:
		a.previewView, cmd = a.previewView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keymap.Matches(key.String(), a.keymap.Back), key.String() == "?":
				a.currentView = a.helpReturn
			case keymap.Matches(key.String(), a.keymap.Quit):
				cmd = tea.Quit
			}
		}
	}
	return cmd
}

func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if view == messages.ViewHelp {
		a.helpReturn = a.currentView
	}
	a.currentView = view
	if view == messages.ViewAsk {
		return a.askView.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewPreview:
		return a.previewView.View()
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Muted.Render("Preview: f toggles between the chunk and the whole document.") + "\n" +
		a.styles.Muted.Render("Results: y copies the selected chunk to the clipboard.") + "\n\n" +
		a.styles.Help.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Query returns the last submitted search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.ScoredResult {
	return a.searchView.Results()
}

// Ready reports whether a window size has been received.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.previewView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
}
