package qgistidy

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	out, err := canonical.Canonicalize(data, rules)
//	if errors.Is(err, qgistidy.ErrParse) {
//	    // Handle malformed XML
//	}
var (
	// ErrUsage indicates the command was invoked with invalid or conflicting options.
	ErrUsage = errors.New("usage error")

	// ErrUnsupportedInput indicates the input is neither a project document nor an archive.
	ErrUnsupportedInput = errors.New("unsupported input type (expected .qgs or .qgz)")

	// ErrParse indicates the project XML is malformed.
	ErrParse = errors.New("XML parse error")

	// ErrInvalidSelector indicates a sort rule path expression is empty or invalid.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrNoPrimaryDocument indicates an archive has no project document entry.
	ErrNoPrimaryDocument = errors.New("no project document found in archive")

	// ErrMultiplePrimaryDocuments indicates an archive has more than one project document entry.
	ErrMultiplePrimaryDocuments = errors.New("multiple project documents found in archive")

	// ErrDuplicateEntry indicates two archive entries share a name.
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrCorruptArchive indicates the archive could not be read.
	ErrCorruptArchive = errors.New("corrupt or unreadable archive")

	// ErrWouldChange indicates a dry run found that the output would differ from the input.
	ErrWouldChange = errors.New("output would change")
)

// usageErrorPatterns are fragments of the errors cobra and pflag return for
// bad command lines.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitProcessingError (3) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrWouldChange):
		return ExitWouldChange
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrUnsupportedInput),
		errors.Is(err, ErrParse):
		return ExitUsageError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitProcessingError
}
