package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS interface with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	cwd   string
	umask os.FileMode

	// Error injection
	errorPaths map[string]error

	// Statistics
	readCount     int
	mutationCount int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// maxLinkHops mirrors the kernel's loop guard when following symlinks
const maxLinkHops = 40

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		cwd:        "/",
		umask:      0022,
		errorPaths: make(map[string]error),
	}
}

// normalizePath converts a path to absolute form
func (m *MemoryFS) normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.cwd, path)
	}
	return filepath.Clean(path)
}

// lookup retrieves the node stored at path without following a trailing link
func (m *MemoryFS) lookup(op, path string) (*fileNode, error) {
	path = m.normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, &fs.PathError{Op: op, Path: path, Err: err}
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// follow resolves trailing symlinks until a non-link node is reached
func (m *MemoryFS) follow(op, path string) (*fileNode, string, error) {
	path = m.normalizePath(path)
	for hops := 0; hops < maxLinkHops; hops++ {
		node, err := m.lookup(op, path)
		if err != nil {
			return nil, "", err
		}
		if !node.isLink {
			return node, path, nil
		}
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return nil, "", &fs.PathError{Op: op, Path: path, Err: errors.New("too many levels of symbolic links")}
}

// parentOf returns the directory node that holds path, the entry name and
// the path with its parent's symlinks resolved
func (m *MemoryFS) parentOf(op, path string) (*fileNode, string, string, error) {
	path = m.normalizePath(path)
	dir := filepath.Dir(path)

	parent, resolvedDir, err := m.follow(op, dir)
	if err != nil {
		return nil, "", "", err
	}
	if !parent.isDir {
		return nil, "", "", &fs.PathError{Op: op, Path: dir, Err: errors.New("not a directory")}
	}

	base := filepath.Base(path)
	return parent, base, filepath.Join(resolvedDir, base), nil
}

func (m *MemoryFS) checkInjected(op, path string) error {
	if err, ok := m.errorPaths[path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

// ReadFile reads the entire file content, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, _, err := m.follow("read", name)
	if err != nil {
		return nil, err
	}

	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary. Like the real
// filesystem, the parent directory must already exist.
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)
	if err := m.checkInjected("open", path); err != nil {
		return err
	}

	parent, filename, path, err := m.parentOf("open", path)
	if err != nil {
		return err
	}

	if existing, ok := parent.children[filename]; ok && existing.isDir {
		return &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
	}

	m.mutationCount++

	node := &fileNode{
		name:    filename,
		mode:    perm.Perm() &^ m.umask,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node

	return nil
}

// Chmod changes the permission bits of the node, following symlinks
func (m *MemoryFS) Chmod(name string, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, _, err := m.follow("chmod", name)
	if err != nil {
		return err
	}

	m.mutationCount++
	node.mode = node.mode.Type() | mode.Perm()
	return nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.follow("stat", name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following a trailing symlink
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.lookup("lstat", name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Remove removes a file, symlink or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)

	node, err := m.lookup("remove", path)
	if err != nil {
		return err
	}

	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent, filename, _, err := m.parentOf("remove", path)
	if err != nil {
		return err
	}

	m.mutationCount++
	delete(parent.children, filename)
	delete(m.files, path)

	return nil
}

// RemoveAll removes a file or directory recursively
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)
	if err := m.checkInjected("removeall", path); err != nil {
		return err
	}

	if _, ok := m.files[path]; !ok {
		return nil
	}

	m.mutationCount++
	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
		}
	}
	if parent, ok := m.files[filepath.Dir(path)]; ok && parent.isDir {
		delete(parent.children, filepath.Base(path))
	}

	return nil
}

// Rename moves a node, and everything below it, to a new path
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.normalizePath(oldpath)
	to := m.normalizePath(newpath)

	if err := m.checkInjected("rename", from); err != nil {
		return err
	}
	if err := m.checkInjected("rename", to); err != nil {
		return err
	}

	node, err := m.lookup("rename", from)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if to == from {
		return nil
	}
	if strings.HasPrefix(to, from+"/") {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errors.New("invalid argument")}
	}

	newParent, newName, _, err := m.parentOf("rename", to)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	if existing, ok := newParent.children[newName]; ok {
		if existing.isDir && len(existing.children) > 0 {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errors.New("directory not empty")}
		}
		if existing.isDir != node.isDir {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
		}
	}
	oldParent, oldName, _, err := m.parentOf("rename", from)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	m.mutationCount++

	moved := make(map[string]*fileNode)
	for p, n := range m.files {
		if p == from || strings.HasPrefix(p, from+"/") {
			moved[to+strings.TrimPrefix(p, from)] = n
			delete(m.files, p)
		}
	}
	for p, n := range moved {
		m.files[p] = n
	}

	delete(oldParent.children, oldName)
	node.name = newName
	newParent.children[newName] = node

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)
	if err := m.checkInjected("mkdir", path); err != nil {
		return err
	}

	if node, _, err := m.follow("mkdir", path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
		}
		return nil
	}

	parts := strings.Split(path, "/")
	current := "/"
	currentNode := m.files["/"]

	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}

		next := filepath.Join(current, parts[i])

		if _, exists := currentNode.children[parts[i]]; exists {
			resolved, resolvedPath, err := m.follow("mkdir", next)
			if err != nil {
				return err
			}
			if !resolved.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = resolved
			current = resolvedPath
			continue
		}

		m.mutationCount++
		newDir := &fileNode{
			name:     parts[i],
			mode:     (perm.Perm() &^ m.umask) | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}

		currentNode.children[parts[i]] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return nil
}

// ReadDir reads a directory and returns its entries sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, _, err := m.follow("readdir", name)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.lookup("readlink", name)
	if err != nil {
		return "", err
	}

	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}

	return node.linkDest, nil
}

// Symlink creates a symbolic link
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := m.normalizePath(link)
	if err := m.checkInjected("symlink", linkPath); err != nil {
		return err
	}

	if _, err := m.lookup("symlink", linkPath); err == nil {
		return &fs.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}

	parent, filename, linkPath, err := m.parentOf("symlink", linkPath)
	if err != nil {
		return err
	}

	m.mutationCount++
	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}

	parent.children[filename] = node
	m.files[linkPath] = node

	return nil
}

// Getwd returns the current working directory
func (m *MemoryFS) Getwd() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cwd, nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, mutations int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.mutationCount
}

// Mutations returns how many calls changed the filesystem so far
func (m *MemoryFS) Mutations() int {
	_, mutations := m.Stats()
	return mutations
}

// Paths returns every path currently present, sorted
func (m *MemoryFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
