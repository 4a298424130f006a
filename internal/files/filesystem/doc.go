// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The CLI reads its input and the output writer writes its result through a
// FileSystemProvider, enabling tests to run against an in-memory filesystem
// while production code uses the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Missing paths are reported with errors that match fs.ErrNotExist in both
// implementations.
package filesystem
