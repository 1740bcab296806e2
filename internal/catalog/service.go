package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service provides the catalog business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BookInput is one entry of a bulk import.
type BookInput struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Register adds a new book to the catalog. The ISBN is normalized and
// title/author are trimmed. Registering an existing ISBN fails with
// ErrDuplicateISBN and leaves the catalog unchanged.
func (s *Service) Register(ctx context.Context, isbn, title, author string) (Book, error) {
	book := Book{
		ISBN:      NormalizeISBN(isbn),
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Available: true,
		AddedAt:   time.Now().UTC(),
	}
	return s.repo.Add(ctx, book)
}

// Borrow checks out a book for the given borrower. Borrowing an unknown
// ISBN fails with ErrNotFound; borrowing a checked-out book fails with
// ErrAlreadyBorrowed.
func (s *Service) Borrow(ctx context.Context, isbn, borrower string) (Book, error) {
	book, err := s.repo.Get(ctx, isbn)
	if err != nil {
		return Book{}, err
	}
	if !book.Available {
		return Book{}, fmt.Errorf("%w: %q is checked out to %s", ErrAlreadyBorrowed, book.Title, book.Borrower)
	}

	return s.repo.Update(ctx, isbn, func(b *Book) {
		b.Checkout(strings.TrimSpace(borrower), time.Now().UTC())
	})
}

// Return checks a borrowed book back in, restoring it to its pre-borrow
// state. Returning an available book fails with ErrNotBorrowed.
func (s *Service) Return(ctx context.Context, isbn string) (Book, error) {
	book, err := s.repo.Get(ctx, isbn)
	if err != nil {
		return Book{}, err
	}
	if book.Available {
		return Book{}, fmt.Errorf("%w: %q", ErrNotBorrowed, book.Title)
	}

	return s.repo.Update(ctx, isbn, func(b *Book) {
		b.Checkin()
	})
}

// Get fetches a single book by ISBN.
func (s *Service) Get(ctx context.Context, isbn string) (Book, error) {
	return s.repo.Get(ctx, isbn)
}

// ListBooks returns the catalog in insertion order, optionally filtered
// to available books.
func (s *Service) ListBooks(ctx context.Context, availableOnly bool) ([]Book, error) {
	return s.repo.List(ctx, availableOnly)
}

// SearchBooks finds books whose title or author contains the query.
func (s *Service) SearchBooks(ctx context.Context, query, field string) ([]Book, error) {
	return s.repo.Search(ctx, query, field)
}

// Remove deletes a book from the catalog.
func (s *Service) Remove(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}

// Summary groups the catalog by author. Authors appear in first-seen
// order, stable with catalog insertion order.
func (s *Service) Summary(ctx context.Context) []AuthorCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, b := range s.repo.Snapshot(ctx) {
		if _, seen := counts[b.Author]; !seen {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}

	out := make([]AuthorCount, 0, len(order))
	for _, author := range order {
		out = append(out, AuthorCount{Author: author, Count: counts[author]})
	}
	return out
}

// Import replaces the whole catalog with the given entries.
func (s *Service) Import(ctx context.Context, entries []BookInput) ([]Book, error) {
	now := time.Now().UTC()
	books := make([]Book, 0, len(entries))
	for _, e := range entries {
		books = append(books, Book{
			ISBN:      NormalizeISBN(e.ISBN),
			Title:     strings.TrimSpace(e.Title),
			Author:    strings.TrimSpace(e.Author),
			Available: true,
			AddedAt:   now,
		})
	}
	if err := s.repo.ReplaceAll(ctx, books); err != nil {
		return nil, err
	}
	return s.repo.Snapshot(ctx), nil
}

// Reset clears the catalog entirely.
func (s *Service) Reset(ctx context.Context) error {
	return s.repo.ReplaceAll(ctx, nil)
}

// Snapshot returns a copy of the full catalog for export.
func (s *Service) Snapshot(ctx context.Context) []Book {
	return s.repo.Snapshot(ctx)
}
