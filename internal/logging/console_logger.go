package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/qgistidy/internal/tui"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	quiet   bool
	color   bool
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If quiet is true, only Error() calls produce output; quiet wins over verbose.
// Prefixes are coloured when stderr is a colour-capable terminal.
func NewConsoleLogger(verbose, quiet bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		quiet:   quiet,
		color:   tui.ColorEnabled(os.Stderr),
		out:     os.Stderr,
	}
}

// SetOutput redirects the logger to w and disables colour.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.color = false
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose || l.quiet {
		return
	}
	l.write(tui.VerboseStyle, "[VERBOSE]", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write(lipgloss.NewStyle(), "", format, args)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write(tui.WarningStyle, "[WARN]", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(tui.ErrorStyle, "[ERROR]", format, args)
}

func (l *ConsoleLogger) write(style lipgloss.Style, label, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if label != "" {
		msg = tui.Paint(style, label, l.color) + " " + msg
	}
	fmt.Fprint(l.out, msg+"\n")
}
