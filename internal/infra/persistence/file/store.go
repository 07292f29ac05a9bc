// Package file persists the snippet collection as a pretty-printed JSON
// document on the local filesystem.
package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"snip/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// DefaultFileName is the document name under the snip config directory.
const DefaultFileName = "snippets.json"

// Store reads the whole document on Load and replaces it atomically on Save.
// The digest of the bytes seen at Load is compared against the file on disk
// before Save renames the new document into place, so a concurrent writer is
// reported as domain.ErrConflict instead of being silently overwritten.
type Store struct {
	path string

	mu     sync.Mutex
	loaded bool
	digest []byte // nil when the file was absent or empty at load
}

// New returns a file-backed store for path. The parent directory is created
// lazily on the first Save.
func New(path string) (*Store, error) {
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	return &Store{path: path}, nil
}

// DefaultPath resolves <user config dir>/snip/snippets.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", &domain.IOError{Op: "resolve config dir", Err: err}
	}
	return filepath.Join(dir, "snip", DefaultFileName), nil
}

func (s *Store) Driver() domain.StorageDriver { return domain.StorageFile }

// Location returns the document path.
func (s *Store) Location() string { return s.path }

// Load decodes the document. A missing or zero-length file yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := readIfExists(s.path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: s.path, Err: err}
	}
	s.mu.Lock()
	s.loaded = true
	s.digest = digestOf(b)
	s.mu.Unlock()
	if len(b) == 0 {
		return []domain.Snippet{}, nil
	}
	return decode(s.path, b)
}

// Save encodes snippets and atomically replaces the document.
func (s *Store) Save(ctx context.Context, snippets []domain.Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(snippets)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		current, err := readIfExists(s.path)
		if err != nil {
			return &domain.IOError{Op: "read", Path: s.path, Err: err}
		}
		if !bytes.Equal(digestOf(current), s.digest) {
			return domain.ErrConflict
		}
	}
	if err := writeAtomic(s.path, data); err != nil {
		return &domain.IOError{Op: "write", Path: s.path, Err: err}
	}
	s.loaded = true
	s.digest = digestOf(data)
	return nil
}

func readIfExists(path string) ([]byte, error) {
	b, err := os.ReadFile(path) // #nosec G304: path is user configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

func digestOf(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	sum := sha256.Sum256(b)
	return sum[:]
}

// rename publishes the temp document; tests replace it to simulate a failing filesystem.
var rename = os.Rename

// writeAtomic streams data to a temp file in the target directory, syncs it
// and renames it over path. The previous document stays intact on any failure.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snippets-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := rename(tmp.Name(), path); err != nil {
		return err
	}
	syncDir(dir)
	return nil
}

// syncDir makes the rename durable where the platform allows fsync on directories.
func syncDir(dir string) {
	d, err := os.Open(dir) // #nosec G304: directory of the configured document
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

// marshalPretty indents with two spaces, keeps <, > and & literal for
// readability, and ends with a newline.
func marshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(snippets []domain.Snippet) ([]byte, error) {
	out := domain.CloneSnippets(snippets)
	if out == nil {
		out = []domain.Snippet{}
	}
	return marshalPretty(out)
}

func decode(source string, b []byte) ([]domain.Snippet, error) {
	var out []domain.Snippet
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &domain.CorruptStoreError{Source: source, Err: err}
	}
	if out == nil {
		// literal "null"
		return nil, &domain.CorruptStoreError{Source: source, Err: errors.New("document is not a snippet array")}
	}
	for i := range out {
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out, nil
}
