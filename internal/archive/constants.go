package archive

import (
	"io/fs"
	"time"

	"github.com/klauspost/compress/flate"
)

// Metadata written for every entry of a rebuilt archive. Changing any of
// these changes the bytes of every archive the tool produces.
const (
	// creatorUnix is the "version made by" host system for Unix.
	creatorUnix = 3

	// entryMode is the permission recorded in each entry's external attributes.
	entryMode fs.FileMode = 0o644

	// compressionLevel is the Deflate level used for every entry.
	compressionLevel = flate.BestCompression
)

// entryModified is the MS-DOS epoch, the earliest time a zip entry can record.
var entryModified = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
