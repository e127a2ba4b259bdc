package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

var _ KeyValue = (*FileStore)(nil)

// FileStore keeps every key in one JSON object on disk. Writes go to a temp
// file that is renamed over the original.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the parent directory if needed. The file itself is
// created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("[NewFileStore] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("[NewFileStore] failed to create data folder: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *FileStore) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.loadForWrite()
	if err != nil {
		return err
	}
	items[key] = value
	return f.save(items)
}

func (f *FileStore) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.save(items)
}

func (f *FileStore) load() (map[string]string, error) {
	items := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &corruptFileError{path: f.path, err: err}
	}
	return items, nil
}

// loadForWrite is load, except that an undecodable file counts as empty so
// the write replaces it.
func (f *FileStore) loadForWrite() (map[string]string, error) {
	items, err := f.load()
	var corrupt *corruptFileError
	if errors.As(err, &corrupt) {
		log.Warn().Err(err).Str("path", f.path).Msg("discarding corrupt storage file")
		return make(map[string]string), nil
	}
	return items, err
}

type corruptFileError struct {
	path string
	err  error
}

func (e *corruptFileError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.path, e.err)
}

func (e *corruptFileError) Unwrap() error {
	return e.err
}

func (f *FileStore) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
