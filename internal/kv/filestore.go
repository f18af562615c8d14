package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store with one file per key.
// Structure:
//
//	<dir>/
//	  memos      value of key "memos"
//	  darkMode   value of key "darkMode"
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory backing the store.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Get reads the file for key. A missing file is reported as ok=false.
func (fs *FileStore) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically writes the file for key using a temp file + rename.
func (fs *FileStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	path := fs.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s tmp: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key)
}
