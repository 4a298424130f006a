package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile is a file or directory entry of a MemoryFileSystem.
type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Relative paths resolve against the root given to NewMemoryFileSystem.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu     sync.RWMutex
	files  map[string]*memoryFile // map of absolute path -> file
	root   string                 // root directory path
	writes int
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	// Normalize root to forward slashes (virtual filesystem convention)
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newDirectory(root)
	return mfs
}

func newDirectory(dirPath string) *memoryFile {
	return &memoryFile{
		info: &memoryFileInfo{
			name:    path.Base(dirPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// resolve maps filePath to its absolute virtual path.
func (mfs *MemoryFileSystem) resolve(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if strings.HasPrefix(filePath, "/") || path.IsAbs(filePath) {
		return path.Clean(filePath)
	}
	return path.Join(mfs.root, filePath)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(mfs.resolve(filePath), content, 0644)
}

// put stores a copy of content at absPath and creates missing parents.
func (mfs *MemoryFileSystem) put(absPath string, content []byte, perm fs.FileMode) {
	data := append([]byte(nil), content...)
	mfs.files[absPath] = &memoryFile{
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    perm,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newDirectory(dir)
	mfs.ensureDirectoriesExist(dir)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), file.content...), nil
}

// WriteFile implements FileSystemProvider.WriteFile. Like os.WriteFile, an
// existing file keeps its mode.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if existing, exists := mfs.files[absPath]; exists {
		if existing.info.IsDir() {
			return fmt.Errorf("path is a directory, not a file: %s", filePath)
		}
		perm = existing.info.mode
	}
	mfs.put(absPath, data, perm)
	mfs.writes++
	return nil
}

// Writes returns the number of WriteFile calls that succeeded.
func (mfs *MemoryFileSystem) Writes() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.writes
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	info := *file.info
	return &info, nil
}
