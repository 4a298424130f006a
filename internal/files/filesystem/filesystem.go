package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider reads and writes whole files.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the file at path, creating it with perm if it
	// does not exist and truncating it otherwise.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
