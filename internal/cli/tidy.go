package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/qgistidy/internal/archive"
	"github.com/vvka-141/qgistidy/internal/canonical"
	"github.com/vvka-141/qgistidy/internal/checksum"
	"github.com/vvka-141/qgistidy/internal/output"
	"github.com/vvka-141/qgistidy/internal/tui"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// Input modes accepted by --mode.
const (
	modeAuto     = "auto"
	modeDocument = "document"
	modeArchive  = "archive"
)

type inputKind int

const (
	kindDocument inputKind = iota
	kindArchive
)

// tidyOptions holds the flags of the root (tidy) command.
type tidyOptions struct {
	inplace    bool
	output     string
	configPath string
	includeXML []string
	list       bool
	strict     bool
	dryRun     bool
	mode       string
}

func (o *tidyOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.inplace, "inplace", "i", false, "Rewrite the input file in place")
	flags.StringVarP(&o.output, "output", "o", "", "Write the result to this file (default: stdout)")
	flags.StringVar(&o.configPath, "config", "", "Rule override file (YAML, or JSON with comments); defaults to $"+qgistidy.ConfigEnvVar)
	flags.StringSliceVar(&o.includeXML, "include-xml", nil, `For .qgz: glob patterns of extra XML entries to tidy (e.g. "*.qml,*.sld")`)
	flags.BoolVar(&o.list, "list", false, "For .qgz: list archive entries and exit")
	flags.BoolVar(&o.strict, "strict", false, "For .qgz: fail when the archive has no .qgs document or an included entry cannot be tidied")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Process but do not write; exit 1 if the output would change")
	flags.StringVar(&o.mode, "mode", modeAuto, "Input type: auto (by extension), document or archive")
}

func (o *tidyOptions) validate(input string) error {
	switch o.mode {
	case modeAuto, modeDocument, modeArchive:
	default:
		return fmt.Errorf("%w: invalid --mode %q (expected auto, document or archive)", qgistidy.ErrUsage, o.mode)
	}
	if o.inplace && o.output != "" {
		return fmt.Errorf("%w: use either --inplace or --output, not both", qgistidy.ErrUsage)
	}
	if input == qgistidy.StdinPath && o.inplace {
		return fmt.Errorf("%w: --inplace is not supported with standard input", qgistidy.ErrUsage)
	}
	return nil
}

// resolveKind decides between document and archive mode. Standard input is
// a document unless --mode archive says otherwise.
func (o *tidyOptions) resolveKind(input string) (inputKind, error) {
	switch o.mode {
	case modeDocument:
		return kindDocument, nil
	case modeArchive:
		return kindArchive, nil
	}

	if input == qgistidy.StdinPath {
		return kindDocument, nil
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case qgistidy.DocumentExt:
		return kindDocument, nil
	case qgistidy.ArchiveExt:
		return kindArchive, nil
	default:
		return 0, fmt.Errorf("%w: %s", qgistidy.ErrUnsupportedInput, input)
	}
}

func runTidy(cmd *cobra.Command, rootOpts *RootOptions, opts *tidyOptions, input string) error {
	if err := opts.validate(input); err != nil {
		return err
	}
	kind, err := opts.resolveKind(input)
	if err != nil {
		return err
	}
	if opts.list && kind != kindArchive {
		return fmt.Errorf("%w: --list applies to .qgz archives only", qgistidy.ErrUsage)
	}

	logger := newLogger(cmd, rootOpts)

	src, err := readInput(cmd, rootOpts, input)
	if err != nil {
		return err
	}

	if opts.list {
		return listArchive(cmd.OutOrStdout(), src.Data, rootOpts.Verbose)
	}

	rules := loadRules(rootOpts.fs, opts.configPath, logger)
	digests := checksum.New()
	logger.Verbose("input %s: %d bytes, blake3 %s", input, len(src.Data), checksum.Short(digests.Sum(src.Data)))

	var payload []byte
	switch kind {
	case kindDocument:
		payload, err = canonical.Canonicalize(src.Data, rules)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	case kindArchive:
		rebuilder := archive.NewRebuilder(canonical.New(), archive.Options{
			Include:             opts.includeXML,
			AllowMissingPrimary: !opts.strict,
			StrictAuxiliary:     opts.strict,
			Logger:              logger,
		})
		result, err := rebuilder.Rebuild(src.Data, rules)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		payload = result.Archive
	}
	logger.Verbose("output: %d bytes, blake3 %s", len(payload), checksum.Short(digests.Sum(payload)))

	if opts.dryRun {
		if output.Differs(payload, src) {
			logger.Info("would change: %s", input)
			return qgistidy.ErrWouldChange
		}
		logger.Verbose("already tidy: %s", input)
		return nil
	}

	dst, err := destination(cmd, opts, kind)
	if err != nil {
		return err
	}
	result, err := output.NewWriter(rootOpts.fs).Write(payload, src, dst)
	if err != nil {
		return err
	}
	if result.Changed {
		logger.Verbose("wrote %s", result.Target)
	} else {
		logger.Verbose("unchanged: %s", input)
	}
	return nil
}

func readInput(cmd *cobra.Command, rootOpts *RootOptions, input string) (output.Source, error) {
	if input == qgistidy.StdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return output.Source{}, fmt.Errorf("failed to read standard input: %w", err)
		}
		return output.Source{Path: input, Data: data}, nil
	}

	info, err := rootOpts.fs.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return output.Source{}, fmt.Errorf("%w: input not found: %s", qgistidy.ErrUsage, input)
		}
		return output.Source{}, fmt.Errorf("failed to stat %s: %w", input, err)
	}
	if info.IsDir() {
		return output.Source{}, fmt.Errorf("%w: input is a directory: %s", qgistidy.ErrUsage, input)
	}

	data, err := rootOpts.fs.ReadFile(input)
	if err != nil {
		return output.Source{}, fmt.Errorf("failed to read %s: %w", input, err)
	}
	return output.Source{Path: input, Data: data}, nil
}

// destination maps the output flags to a Destination. Archive bytes are
// never written to a terminal.
func destination(cmd *cobra.Command, opts *tidyOptions, kind inputKind) (output.Destination, error) {
	switch {
	case opts.inplace:
		return output.OverwriteSource(), nil
	case opts.output != "":
		return output.ToPath(opts.output), nil
	}

	stdout := cmd.OutOrStdout()
	if kind == kindArchive {
		if f, ok := stdout.(*os.File); ok && tui.IsTerminal(f) {
			return output.Destination{}, fmt.Errorf("%w: refusing to write a .qgz archive to a terminal; use --inplace, --output or redirect stdout", qgistidy.ErrUsage)
		}
	}
	return output.ToSink(stdout), nil
}

// listArchive prints entry names in archive order. Verbose adds sizes and
// content digests.
func listArchive(w io.Writer, data []byte, verbose bool) error {
	infos, err := archive.List(data)
	if err != nil {
		return err
	}

	if !verbose {
		for _, info := range infos {
			fmt.Fprintln(w, info.Name)
		}
		return nil
	}

	digests := checksum.New()
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSIZE\tCOMPRESSED\tBLAKE3")
	for _, info := range infos {
		digest := "-"
		if !info.Dir {
			content, err := info.Content()
			if err != nil {
				return err
			}
			digest = checksum.Short(digests.Sum(content))
		}
		fmt.Fprintf(writer, "%s\t%d\t%d\t%s\n", info.Name, info.Size, info.CompressedSize, digest)
	}
	return writer.Flush()
}
