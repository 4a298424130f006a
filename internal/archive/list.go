package archive

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zip"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// Info describes one archive member as stored.
type Info struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	Dir            bool

	file *zip.File
}

// Content reads and returns the member's uncompressed bytes. Directories
// have no content.
func (i Info) Content() ([]byte, error) {
	if i.Dir || i.file == nil {
		return nil, nil
	}
	return readEntry(i.file)
}

// List returns the members of the archive in src in archive order,
// directories included.
func List(src []byte) ([]Info, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qgistidy.ErrCorruptArchive, err)
	}

	infos := make([]Info, 0, len(zr.File))
	for _, f := range zr.File {
		infos = append(infos, Info{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Dir:            isDir(f),
			file:           f,
		})
	}
	return infos, nil
}
