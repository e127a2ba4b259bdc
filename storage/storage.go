package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"github.com/jrsteele09/quickserve-session/storage/storagefake"
)

// KeyValue is durable string storage that survives process restarts.
// A missing key is not an error: GetItem reports it through ok=false.
type KeyValue interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

const (
	fileName   = "session.json"
	sqliteName = "session.db"
)

// Open returns the KeyValue back end named by the configuration.
func Open(cfg config.StorageConfig) (KeyValue, error) {
	switch cfg.GetStorageBackend() {
	case config.StorageMemory:
		return storagefake.New(), nil
	case config.StorageFile, "":
		return NewFileStore(filepath.Join(cfg.GetDataFolder(), fileName))
	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.GetDataFolder(), 0o700); err != nil {
			return nil, fmt.Errorf("[storage.Open] failed to create data folder: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.GetDataFolder(), sqliteName))
	default:
		return nil, fmt.Errorf("[storage.Open] %q: %w", cfg.GetStorageBackend(), errors.ErrUnknownBackend)
	}
}
