package openmht

import (
	"os"

	"golang.org/x/term"
)

// GetTerminalSize returns the terminal dimensions (columns, lines).
// If terminal size cannot be detected, returns the provided defaults.
func GetTerminalSize(defaultCols, defaultLines int) (cols, lines int) {
	if width, height, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		return width, height
	}
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return width, height
	}
	if width, height, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
		return width, height
	}
	return defaultCols, defaultLines
}

// IsInteractive reports whether stderr is attached to a terminal. Progress
// output is suppressed when it is not.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
