// Package files groups file-related functionality.
//
// Sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//
// # Usage
//
//	import "github.com/vvka-141/qgistidy/internal/files/filesystem"
//
//	fsProvider := filesystem.NewOSFileSystem()
//	data, err := fsProvider.ReadFile("project.qgs")
package files
