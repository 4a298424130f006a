package qgistidy

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: Dry run detected a difference
//   - 2: CLI usage error or malformed XML
//   - 3: Processing error
const (
	ExitSuccess         = 0 // Normalized (or dry run found nothing to change)
	ExitWouldChange     = 1 // --dry-run: output would differ from input
	ExitUsageError      = 2 // CLI usage error (missing args, invalid flags) or XML parse error
	ExitProcessingError = 3 // Archive, rule evaluation, I/O or unexpected failure
)

const (
	// DocumentExt is the file extension of a standalone QGIS project document.
	DocumentExt = ".qgs"

	// ArchiveExt is the file extension of a zipped QGIS project.
	ArchiveExt = ".qgz"

	// StdinPath is the input argument that selects standard input.
	StdinPath = "-"

	// ConfigEnvVar names the environment variable consulted for a rule override
	// file when --config is not given.
	ConfigEnvVar = "QGISTIDY_CONFIG"
)

// XMLEntryExts lists the archive entry extensions that may be normalized when
// they are opted in through include patterns.
var XMLEntryExts = []string{".qgs", ".xml", ".qml", ".sld"}
