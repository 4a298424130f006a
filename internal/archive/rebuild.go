package archive

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/vvka-141/qgistidy/internal/logging"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// Canonicalizer normalizes a single XML document.
type Canonicalizer interface {
	Canonicalize(raw []byte, rules *qgistidy.RuleSet) ([]byte, error)
}

// Options configures a Rebuilder.
type Options struct {
	// DocumentExt is the extension of the primary project document.
	// Defaults to qgistidy.DocumentExt. Compared case-insensitively.
	DocumentExt string

	// Include lists glob patterns (path.Match syntax) selecting auxiliary
	// XML entries to normalize.
	Include []string

	// AllowMissingPrimary repacks an archive without a project document
	// instead of failing with qgistidy.ErrNoPrimaryDocument.
	AllowMissingPrimary bool

	// StrictAuxiliary makes a failure to normalize an auxiliary entry fatal.
	// When false the original bytes are kept and a warning is logged.
	StrictAuxiliary bool

	// Logger receives per-entry progress. Defaults to a NullLogger.
	Logger qgistidy.Logger
}

// Result is the outcome of a rebuild.
type Result struct {
	// Archive holds the rebuilt archive bytes.
	Archive []byte

	// Changed is true when Archive differs from the source bytes.
	Changed bool

	// Primary is the name of the project document, empty when the archive
	// had none and AllowMissingPrimary was set.
	Primary string

	// Normalized lists the entries that were canonicalized, in archive order.
	Normalized []string

	// Kept lists auxiliary entries that failed to normalize and were copied
	// unchanged.
	Kept []string
}

// Rebuilder produces deterministic archives.
type Rebuilder struct {
	canonicalizer Canonicalizer
	classifier    classifier
	opts          Options
	logger        qgistidy.Logger
}

// NewRebuilder creates a Rebuilder that normalizes XML entries with c.
func NewRebuilder(c Canonicalizer, opts Options) *Rebuilder {
	if opts.DocumentExt == "" {
		opts.DocumentExt = qgistidy.DocumentExt
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Rebuilder{
		canonicalizer: c,
		classifier: classifier{
			documentExt: opts.DocumentExt,
			include:     append([]string(nil), opts.Include...),
		},
		opts:   opts,
		logger: logger,
	}
}

// Rebuild reads the archive in src and returns a deterministic rebuild of it.
//
// Errors wrap qgistidy.ErrCorruptArchive, ErrDuplicateEntry,
// ErrNoPrimaryDocument, ErrMultiplePrimaryDocuments or ErrUsage (bad include
// pattern). A failure to canonicalize the primary document is returned as is,
// wrapped with the entry name. No partial output is returned on error.
func (r *Rebuilder) Rebuild(src []byte, rules *qgistidy.RuleSet) (*Result, error) {
	for _, pattern := range r.classifier.include {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%w: include pattern %q: %v", qgistidy.ErrUsage, pattern, err)
		}
	}

	entries, err := r.scan(src)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if err := r.checkPrimary(entries, result); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, newDeflater)

	for _, entry := range entries {
		content, err := r.content(entry, rules, result)
		if err != nil {
			return nil, err
		}
		if err := writeEntry(zw, entry.Name(), content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	result.Archive = buf.Bytes()
	result.Changed = !bytes.Equal(result.Archive, src)
	return result, nil
}

// scan reads every regular entry of src, classified and sorted by name.
func (r *Rebuilder) scan(src []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qgistidy.ErrCorruptArchive, err)
	}

	seen := make(map[string]struct{}, len(zr.File))
	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		if isDir(f) {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s", qgistidy.ErrDuplicateEntry, f.Name)
		}
		seen[f.Name] = struct{}{}

		content, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, r.classifier.classify(f.Name, content))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (r *Rebuilder) checkPrimary(entries []Entry, result *Result) error {
	var primaries []string
	for _, entry := range entries {
		if p, ok := entry.(Primary); ok {
			primaries = append(primaries, p.Name())
		}
	}

	switch len(primaries) {
	case 1:
		result.Primary = primaries[0]
		return nil
	case 0:
		if !r.opts.AllowMissingPrimary {
			return fmt.Errorf("%w (expected an entry ending in %s)", qgistidy.ErrNoPrimaryDocument, r.opts.DocumentExt)
		}
		r.logger.Warn("no %s document in archive; repacking entries unchanged", r.opts.DocumentExt)
		return nil
	default:
		return fmt.Errorf("%w: %s", qgistidy.ErrMultiplePrimaryDocuments, strings.Join(primaries, ", "))
	}
}

// content returns the bytes to store for entry.
func (r *Rebuilder) content(entry Entry, rules *qgistidy.RuleSet, result *Result) ([]byte, error) {
	switch e := entry.(type) {
	case Primary:
		out, err := r.canonicalizer.Canonicalize(e.Content(), rules)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s: %w", e.Name(), err)
		}
		r.logger.Info("normalized: %s", e.Name())
		result.Normalized = append(result.Normalized, e.Name())
		return out, nil

	case Auxiliary:
		out, err := r.canonicalizer.Canonicalize(e.Content(), rules)
		if err != nil {
			if r.opts.StrictAuxiliary {
				return nil, fmt.Errorf("failed to normalize %s: %w", e.Name(), err)
			}
			r.logger.Warn("failed to normalize %s: %v", e.Name(), err)
			result.Kept = append(result.Kept, e.Name())
			return e.Content(), nil
		}
		r.logger.Info("normalized: %s", e.Name())
		result.Normalized = append(result.Normalized, e.Name())
		return out, nil

	default:
		r.logger.Verbose("copied: %s", entry.Name())
		return entry.Content(), nil
	}
}

func newDeflater(w io.Writer) (io.WriteCloser, error) {
	return flate.NewWriter(w, compressionLevel)
}

// writeEntry stores content under name with the pinned entry metadata.
func writeEntry(zw *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{
		Name:           name,
		Method:         zip.Deflate,
		Modified:       entryModified,
		CreatorVersion: creatorUnix << 8,
	}
	header.SetMode(entryMode)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", qgistidy.ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", qgistidy.ErrCorruptArchive, f.Name, err)
	}
	return content, nil
}

func isDir(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}
