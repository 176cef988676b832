// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/quarry/internal/core/domain"
)

// SearchCompleted carries a ranking response back to the search view.
type SearchCompleted struct {
	Query    string
	Response *domain.SearchResponse
	Err      error
}

// StatusLoaded carries the index summary fetched at startup.
type StatusLoaded struct {
	Summary domain.IndexSummary
}

// ResultSelected opens a result in the preview view.
type ResultSelected struct {
	Result domain.ScoredResult
}

// SourceLoaded carries the full text of a previewed document.
type SourceLoaded struct {
	Path    string
	Content string
	Err     error
}

// AnswerReceived carries the language model's answer to the ask view.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the query input and ranked results.
	ViewSearch
	// ViewPreview shows one result's chunk or source document.
	ViewPreview
	// ViewAsk is the question input and answer.
	ViewAsk
	// ViewHelp lists keybindings.
	ViewHelp
)

// String returns a human-readable name for the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewPreview:
		return "preview"
	case ViewAsk:
		return "ask"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit signals that the application should exit.
type Quit struct{}
