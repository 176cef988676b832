package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Search the index, preview matching chunks or their whole documents,
and ask questions without leaving the terminal.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Preview
  f        - Toggle chunk / whole document in preview
  y        - Copy the selected chunk
  a        - Ask a question
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	if searchService == nil {
		return errNotConfigured("search")
	}

	app, err := tui.NewApp(tui.NewPorts(searchService, askService, readSource))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// readSource loads a document by its chunk path.
func readSource(chunkPath string) (string, error) {
	path := chunkPath
	if services != nil && services.ResolvePath != nil {
		path = services.ResolvePath(chunkPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", chunkPath, err)
	}
	return string(data), nil
}
