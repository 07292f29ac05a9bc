package domain

import "context"

// StorageDriver identifies a concrete persistence adapter.
type StorageDriver string

const (
	StorageFile   StorageDriver = "file"   // pretty JSON document (default)
	StorageMemory StorageDriver = "memory" // in-process only (tests / ephemeral)
	StorageSQLite StorageDriver = "sqlite" // embedded sqlite file
)

// PersistentStore reads and writes the full snippet collection as one document.
// Load on empty or absent storage returns an empty collection and no error.
// Save overwrites the previous document; on failure the previous document stays intact.
type PersistentStore interface {
	Load(ctx context.Context) ([]Snippet, error)
	Save(ctx context.Context, snippets []Snippet) error
	Driver() StorageDriver
}
