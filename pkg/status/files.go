// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing/fstest"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager reads and commits files under a root directory. Paths are
// slash separated and relative to the root, as in io/fs.
type FileManager interface {
	// Root returns the root as shown to the user
	Root() string

	// FS exposes the tree for discovery
	FS() fs.FS

	// ReadFile returns the full content of path
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile truncates an existing file and writes content, keeping its mode
	WriteFile(ctx context.Context, path string, content []byte) error
}

// DisplayPath joins a relative path onto the manager's root for output
func DisplayPath(m FileManager, path string) string {
	return filepath.Join(m.Root(), filepath.FromSlash(path))
}

// 🗂️ DirManager is a FileManager backed by the operating system
type DirManager struct {
	baseDir string
}

var _ FileManager = (*DirManager)(nil)

// 🏭 NewDirManager creates a FileManager rooted at baseDir
func NewDirManager(baseDir string) *DirManager {
	return &DirManager{baseDir: filepath.Clean(baseDir)}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *DirManager) getAbsPath(path string) (string, error) {
	if !fs.ValidPath(path) {
		return "", errors.Errorf("invalid path %q", path)
	}
	return filepath.Join(m.baseDir, filepath.FromSlash(path)), nil
}

func (m *DirManager) Root() string {
	return m.baseDir
}

func (m *DirManager) FS() fs.FS {
	return os.DirFS(m.baseDir)
}

func (m *DirManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	absPath, err := m.getAbsPath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *DirManager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath, err := m.getAbsPath(path)
	if err != nil {
		return err
	}

	// no O_CREATE: a commit only ever replaces a file the walk found
	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Errorf("opening file for write: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return errors.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}
	return nil
}

// 🧠 MemManager is an in-memory FileManager
type MemManager struct {
	mu     sync.Mutex
	root   string
	files  fstest.MapFS
	writes []string
}

var _ FileManager = (*MemManager)(nil)

// 🏭 NewMemManager wraps files, which is modified in place by WriteFile
func NewMemManager(root string, files fstest.MapFS) *MemManager {
	return &MemManager{root: root, files: files}
}

func (m *MemManager) Root() string {
	return m.root
}

func (m *MemManager) FS() fs.FS {
	return m.files
}

func (m *MemManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, err := fs.ReadFile(m.files, path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *MemManager) WriteFile(ctx context.Context, path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.files[path]
	if !ok || existing.Mode.IsDir() {
		return errors.Errorf("opening file for write: %w", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist})
	}

	m.files[path] = &fstest.MapFile{
		Data:    append([]byte(nil), content...),
		Mode:    existing.Mode,
		ModTime: existing.ModTime,
		Sys:     existing.Sys,
	}
	m.writes = append(m.writes, path)
	return nil
}

// Writes returns the committed paths in order
func (m *MemManager) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}
