package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/qgistidy/internal/files/filesystem"
	"github.com/vvka-141/qgistidy/internal/logging"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Quiet   bool

	fs filesystem.FileSystemProvider
}

// NewRootCommand creates the qgistidy command tree backed by the OS filesystem.
func NewRootCommand() *cobra.Command {
	return newRootCommand(filesystem.NewOSFileSystem())
}

func newRootCommand(fsys filesystem.FileSystemProvider) *cobra.Command {
	opts := &RootOptions{fs: fsys}
	tidy := &tidyOptions{}

	cmd := &cobra.Command{
		Use:   "qgistidy <input>",
		Short: "Make QGIS project files diff-stable",
		Long: `qgistidy rewrites QGIS projects so that semantically identical projects
produce byte-identical files.

For a .qgs document it strips volatile attributes, sorts order-insensitive
lists, canonicalizes the XML and pretty prints it. For a .qgz archive it does
the same to the embedded project document and rebuilds the zip with fixed
entry order, timestamps and compression.

Output goes to stdout unless --inplace or --output is given. Use "-" to read
a .qgs document from stdin.

Exit Codes:
  0  - Success (or --dry-run found nothing to change)
  1  - --dry-run: output would change
  2  - CLI usage error or malformed XML
  3  - Processing error (archive, rules, I/O or unexpected failure)`,
		Example: `  qgistidy project.qgs > tidy.qgs
  qgistidy -i project.qgz
  qgistidy -i --include-xml "*.qml,*.sld" project.qgz
  qgistidy --dry-run project.qgs || echo "needs tidying"`,
		Args:          RequireInput,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(cmd, opts, tidy, args[0])
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress non-error logs")
	tidy.register(cmd)

	cmd.AddCommand(newRulesCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return NewRootCommand().Execute()
}

// newLogger builds the console logger for a command run. Output follows the
// command's error stream so tests can capture it.
func newLogger(cmd *cobra.Command, opts *RootOptions) qgistidy.Logger {
	logger := logging.NewConsoleLogger(opts.Verbose, opts.Quiet)
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		logger.SetOutput(w)
	}
	return logger
}
