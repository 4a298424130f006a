// Package output delivers normalized bytes to their destination.
package output

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/vvka-141/qgistidy/internal/files/filesystem"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// filePerm applies to files the writer creates.
const filePerm fs.FileMode = 0o644

// Source is the input the payload was produced from. Path is empty (or
// qgistidy.StdinPath) when the input came from standard input.
type Source struct {
	Path string
	Data []byte
}

func (s Source) hasPath() bool {
	return s.Path != "" && s.Path != qgistidy.StdinPath
}

type destinationKind int

const (
	kindOverwriteSource destinationKind = iota
	kindPath
	kindSink
)

// Destination selects where Write puts the payload. Construct one with
// OverwriteSource, ToPath or ToSink.
type Destination struct {
	kind destinationKind
	path string
	sink io.Writer
}

// OverwriteSource writes the payload back to the source file.
func OverwriteSource() Destination {
	return Destination{kind: kindOverwriteSource}
}

// ToPath writes the payload to the file at path.
func ToPath(path string) Destination {
	return Destination{kind: kindPath, path: path}
}

// ToSink writes the payload to w, typically standard output.
func ToSink(w io.Writer) Destination {
	return Destination{kind: kindSink, sink: w}
}

// Result reports what Write did.
type Result struct {
	// Changed is true when the payload differs from the source bytes.
	Changed bool

	// Target names the written file, or "-" for a sink.
	Target string
}

// Writer writes payloads through a filesystem provider.
type Writer struct {
	fs filesystem.FileSystemProvider
}

// NewWriter creates a Writer that writes files through fsys.
func NewWriter(fsys filesystem.FileSystemProvider) *Writer {
	return &Writer{fs: fsys}
}

// Write performs exactly one write of payload to dst. Overwriting a source
// that has no path, or a sink destination with a nil writer, is a usage
// error wrapping qgistidy.ErrUsage.
func (w *Writer) Write(payload []byte, src Source, dst Destination) (*Result, error) {
	result := &Result{Changed: Differs(payload, src)}

	switch dst.kind {
	case kindOverwriteSource:
		if !src.hasPath() {
			return nil, fmt.Errorf("%w: cannot rewrite standard input in place", qgistidy.ErrUsage)
		}
		if err := w.fs.WriteFile(src.Path, payload, filePerm); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", src.Path, err)
		}
		result.Target = src.Path

	case kindPath:
		if dst.path == "" {
			return nil, fmt.Errorf("%w: empty output path", qgistidy.ErrUsage)
		}
		if err := w.fs.WriteFile(dst.path, payload, filePerm); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dst.path, err)
		}
		result.Target = dst.path

	case kindSink:
		if dst.sink == nil {
			return nil, fmt.Errorf("%w: no output stream", qgistidy.ErrUsage)
		}
		if _, err := dst.sink.Write(payload); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		result.Target = qgistidy.StdinPath

	default:
		return nil, fmt.Errorf("unknown destination kind %d", dst.kind)
	}

	return result, nil
}

// Differs reports whether payload differs from the source bytes.
func Differs(payload []byte, src Source) bool {
	return !bytes.Equal(payload, src.Data)
}
