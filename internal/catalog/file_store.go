package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the whole catalog as one JSON document. It is a
// single-writer store: every Save rewrites the file wholesale.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file, creating the
// parent directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the full catalog from disk. A missing or empty file yields
// the default seed catalog, which is persisted so subsequent loads are
// stable. A file that exists but cannot be parsed yields an error
// wrapping ErrCorruptCatalog.
func (s *FileStore) Load() ([]Book, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.seed()
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return s.seed()
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, s.path, err)
	}
	return books, nil
}

// Save rewrites the backing file with the given catalog.
func (s *FileStore) Save(books []Book) error {
	if books == nil {
		books = []Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) seed() ([]Book, error) {
	books := DefaultCatalog()
	if err := s.Save(books); err != nil {
		return nil, err
	}
	return books, nil
}
