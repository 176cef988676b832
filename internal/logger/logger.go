// Package logger provides process-wide logging for Quarry.
// Diagnostic messages are printed to stderr only when verbose mode is
// enabled with --verbose. Progress lines are printed regardless of
// verbosity, but only when their destination is an interactive terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	progressOut   io.Writer = os.Stdout
	progressTTY             = isTerminal(os.Stdout)
	progressDirty bool
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for diagnostic messages. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetProgressOutput sets the writer for progress lines. Progress is only
// emitted when w is a terminal.
func SetProgressOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	progressOut = w
	progressTTY = isTerminal(w)
	progressDirty = false
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Progress overwrites the current terminal line with a status message.
func Progress(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !progressTTY {
		return
	}
	fmt.Fprintf(progressOut, "\r"+format, args...)
	progressDirty = true
}

// EndProgress terminates a progress line so later output starts clean.
// It is a no-op when nothing was printed.
func EndProgress() {
	mu.Lock()
	defer mu.Unlock()
	if progressDirty {
		fmt.Fprintln(progressOut)
		progressDirty = false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
