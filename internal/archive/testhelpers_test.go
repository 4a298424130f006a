package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// testEntry is a member written by makeArchive. A name ending in "/" is
// written as a directory.
type testEntry struct {
	name    string
	content string
}

// makeArchive builds a zip with metadata deliberately unlike the pinned
// values: a recent timestamp, stored (uncompressed) entries and a comment.
func makeArchive(t *testing.T, entries ...testEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		header := &zip.FileHeader{
			Name:     e.name,
			Method:   zip.Store,
			Modified: time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
		}
		w, err := zw.CreateHeader(header)
		require.NoError(t, err)
		if !strings.HasSuffix(e.name, "/") {
			_, err = w.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.SetComment("made by a test"))
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// readArchive returns name -> content for every regular member, plus the
// member names in archive order.
func readArchive(t *testing.T, data []byte) (map[string]string, []string) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	contents := make(map[string]string, len(zr.File))
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		contents[f.Name] = string(b)
		names = append(names, f.Name)
	}
	return contents, names
}

var errBrokenXML = fmt.Errorf("%w: broken input", qgistidy.ErrParse)

// fakeCanonicalizer upper-cases its input and fails on content containing
// "broken".
type fakeCanonicalizer struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeCanonicalizer) Canonicalize(raw []byte, _ *qgistidy.RuleSet) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, string(raw))
	f.mu.Unlock()

	if bytes.Contains(raw, []byte("broken")) {
		return nil, errBrokenXML
	}
	return bytes.ToUpper(raw), nil
}

// recordingLogger keeps every message, prefixed with its level.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.record("verbose", format, args)
}
func (l *recordingLogger) Info(format string, args ...interface{})  { l.record("info", format, args) }
func (l *recordingLogger) Warn(format string, args ...interface{})  { l.record("warn", format, args) }
func (l *recordingLogger) Error(format string, args ...interface{}) { l.record("error", format, args) }

func (l *recordingLogger) has(line string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, got := range l.lines {
		if got == line {
			return true
		}
	}
	return false
}
