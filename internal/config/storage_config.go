package config

type StorageBackend string

const (
	StorageMemory StorageBackend = "memory"
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
)

// DefaultStorageKey is the key the browser client persisted its session under.
const DefaultStorageKey = "quickserve-auth"

type StorageConfig interface {
	GetStorageBackend() StorageBackend
	GetDataFolder() string
	GetStorageKey() string
}

type Storage struct {
	Backend    StorageBackend `env:"QUICKSERVE_STORAGE" envDefault:"file"`
	DataFolder string         `env:"QUICKSERVE_DATA_DIR" envDefault:"./data"`
	Key        string         `env:"QUICKSERVE_STORAGE_KEY" envDefault:"quickserve-auth"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() StorageBackend {
	return s.Backend
}

func (s Storage) GetDataFolder() string {
	return s.DataFolder
}

func (s Storage) GetStorageKey() string {
	if s.Key == "" {
		return DefaultStorageKey
	}
	return s.Key
}
