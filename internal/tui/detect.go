package tui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled determines whether output written to f should be styled.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - CI is set (common CI/CD convention)
//   - TERM is "dumb"
//   - f is not a terminal (redirected or piped output)
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(f)
}
