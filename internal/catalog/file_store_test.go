package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, err)
	return store
}

func TestFileStore_SeedsMissingFile(t *testing.T) {
	store := newTestStore(t)

	books, err := store.Load()
	require.NoError(t, err)
	require.Len(t, books, 5)

	titles := make(map[string]string)
	for _, b := range books {
		assert.True(t, b.Available)
		assert.Empty(t, b.Borrower)
		titles[b.Title] = b.Author
	}
	assert.Equal(t, "Paulo Coelho", titles["The Alchemist"])

	// The seed is persisted so subsequent loads are stable.
	_, err = os.Stat(store.Path())
	require.NoError(t, err)

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, books, again)
}

func TestFileStore_SeedsEmptyFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o644))

	books, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, books, 5)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	borrowedAt := time.Now().UTC()
	books := []Book{
		{ISBN: "9780143128540", Title: "Sapiens", Author: "Yuval Noah Harari", Available: true, AddedAt: time.Now().UTC()},
		{ISBN: "9780062316097", Title: "Homo Deus", Author: "Yuval Noah Harari", Available: false, Borrower: "Alice", AddedAt: time.Now().UTC(), BorrowedAt: &borrowedAt},
	}

	require.NoError(t, store.Save(books))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func TestFileStore_EmptyCatalogStaysEmpty(t *testing.T) {
	store := newTestStore(t)

	// An explicitly saved empty catalog is not re-seeded: the file
	// holds "[]", which is valid data, not an absent file.
	require.NoError(t, store.Save(nil))

	books, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestFileStore_MalformedFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptCatalog)
}

func TestNewFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "catalog.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
