package core

import (
	"fmt"
	"strings"

	"snip/internal/infra/persistence/file"
	"snip/internal/infra/persistence/memory"
	"snip/internal/infra/persistence/sqlite"
)

// StorageOptions selects and locates a persistence adapter.
// Empty paths fall back to the adapter defaults under the user config directory.
type StorageOptions struct {
	Driver     StorageDriver
	FilePath   string
	SQLitePath string
}

// OpenPersistentStore constructs the adapter named by opts.Driver.
// Defaults to the JSON file adapter when unset.
func OpenPersistentStore(opts StorageOptions) (PersistentStore, error) {
	driver := StorageDriver(strings.ToLower(strings.TrimSpace(string(opts.Driver))))
	if driver == "" {
		driver = StorageFile
	}
	switch driver {
	case StorageFile:
		fs, err := file.New(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		ss, err := sqlite.NewStore(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return ss, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", opts.Driver)
	}
}
