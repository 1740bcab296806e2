package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// repository keeps the catalog in memory, hydrated from a Store at
// construction, and re-persists the whole catalog after each mutation.
// The mutex makes it safe for the HTTP server's concurrent handlers;
// cross-process coordination is out of scope.
type repository struct {
	mu       sync.RWMutex
	store    Store
	books    []Book
	index    map[string]int
	autosave bool
}

// NewRepository hydrates a repository from the given store. When
// autosave is false, mutations update memory only (ReplaceAll still
// persists).
func NewRepository(store Store, autosave bool) (Repository, error) {
	books, err := store.Load()
	if err != nil {
		return nil, err
	}

	r := &repository{
		store:    store,
		autosave: autosave,
	}
	r.rebuild(books)
	return r, nil
}

func (r *repository) rebuild(books []Book) {
	r.books = make([]Book, 0, len(books))
	r.index = make(map[string]int, len(books))
	for _, b := range books {
		b.ISBN = NormalizeISBN(b.ISBN)
		if _, dup := r.index[b.ISBN]; dup {
			continue
		}
		r.index[b.ISBN] = len(r.books)
		r.books = append(r.books, b)
	}
}

func (r *repository) persist() error {
	if !r.autosave {
		return nil
	}
	return r.store.Save(r.books)
}

func (r *repository) Add(ctx context.Context, book Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book.ISBN = NormalizeISBN(book.ISBN)
	if _, exists := r.index[book.ISBN]; exists {
		return Book{}, fmt.Errorf("%w: ISBN %s", ErrDuplicateISBN, book.ISBN)
	}

	r.index[book.ISBN] = len(r.books)
	r.books = append(r.books, book)
	if err := r.persist(); err != nil {
		return Book{}, err
	}
	return book, nil
}

func (r *repository) Get(ctx context.Context, isbn string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[NormalizeISBN(isbn)]
	if !ok {
		return Book{}, fmt.Errorf("%w: ISBN %s", ErrNotFound, isbn)
	}
	return r.books[i], nil
}

func (r *repository) List(ctx context.Context, availableOnly bool) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if availableOnly && !b.Available {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Search matches the query case-insensitively as a substring of the
// chosen field ("title" or "author"), or of either when field is empty.
func (r *repository) Search(ctx context.Context, query, field string) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]Book, 0)
	for _, b := range r.books {
		title := strings.Contains(strings.ToLower(b.Title), q)
		author := strings.Contains(strings.ToLower(b.Author), q)

		switch field {
		case "title":
			if title {
				out = append(out, b)
			}
		case "author":
			if author {
				out = append(out, b)
			}
		default:
			if title || author {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, isbn string, mutate func(*Book)) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[NormalizeISBN(isbn)]
	if !ok {
		return Book{}, fmt.Errorf("%w: ISBN %s", ErrNotFound, isbn)
	}

	updated := r.books[i]
	mutate(&updated)
	updated.ISBN = r.books[i].ISBN // ISBN is immutable
	r.books[i] = updated

	if err := r.persist(); err != nil {
		return Book{}, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := NormalizeISBN(isbn)
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%w: ISBN %s", ErrNotFound, isbn)
	}

	r.books = append(r.books[:i], r.books[i+1:]...)
	delete(r.index, key)
	for j := i; j < len(r.books); j++ {
		r.index[r.books[j].ISBN] = j
	}
	return r.persist()
}

// ReplaceAll swaps the entire catalog and persists it regardless of the
// autosave setting.
func (r *repository) ReplaceAll(ctx context.Context, books []Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rebuild(books)
	return r.store.Save(r.books)
}

func (r *repository) Snapshot(ctx context.Context) []Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out
}
