package catalog

import (
	"strings"
	"time"
	"unicode"
)

// Book represents a single entry in the catalog.
type Book struct {
	ISBN       string     `json:"isbn"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Available  bool       `json:"available"`
	Borrower   string     `json:"borrower,omitempty"`
	AddedAt    time.Time  `json:"added_at"`
	BorrowedAt *time.Time `json:"borrowed_at,omitempty"`
}

// Checkout marks the book as borrowed by the given borrower.
func (b *Book) Checkout(borrower string, at time.Time) {
	b.Available = false
	b.Borrower = borrower
	b.BorrowedAt = &at
}

// Checkin returns the book to the catalog.
func (b *Book) Checkin() {
	b.Available = true
	b.Borrower = ""
	b.BorrowedAt = nil
}

// AuthorCount is one row of the author summary.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// NormalizeISBN strips separators from an ISBN and upper-cases it, so
// "978-0-14-312774-1" and "9780143127741" address the same book.
func NormalizeISBN(isbn string) string {
	var sb strings.Builder
	for _, r := range isbn {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToUpper(r))
		}
	}
	return sb.String()
}

// DefaultCatalog returns the five classics seeded on first run.
func DefaultCatalog() []Book {
	now := time.Now().UTC()
	seed := []struct {
		isbn, title, author string
	}{
		{"9780143127741", "The Alchemist", "Paulo Coelho"},
		{"9780679783268", "Pride and Prejudice", "Jane Austen"},
		{"9780307474278", "The Girl with the Dragon Tattoo", "Stieg Larsson"},
		{"9780747532743", "Harry Potter and the Philosopher's Stone", "J.K. Rowling"},
		{"9780061120084", "To Kill a Mockingbird", "Harper Lee"},
	}

	books := make([]Book, 0, len(seed))
	for _, s := range seed {
		books = append(books, Book{
			ISBN:      s.isbn,
			Title:     s.title,
			Author:    s.author,
			Available: true,
			AddedAt:   now,
		})
	}
	return books
}
