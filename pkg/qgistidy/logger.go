package qgistidy

// Logger provides a pluggable logging interface for qgistidy operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	// Suppressed in quiet mode.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems, such as an ignored rule file
	// or an include entry that could not be normalized.
	// Suppressed in quiet mode.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	// Always logged.
	Error(format string, args ...interface{})
}
