package catalog

import "errors"

var (
	// ErrNotFound indicates that no book with the requested ISBN exists.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicateISBN indicates an attempt to register an ISBN that is
	// already in the catalog.
	ErrDuplicateISBN = errors.New("book already exists")

	// ErrAlreadyBorrowed indicates a borrow attempt on a book that is
	// currently checked out.
	ErrAlreadyBorrowed = errors.New("book is already borrowed")

	// ErrNotBorrowed indicates a return attempt on a book that is not
	// checked out.
	ErrNotBorrowed = errors.New("book is not currently borrowed")

	// ErrCorruptCatalog indicates that the backing file exists but does
	// not contain a valid catalog.
	ErrCorruptCatalog = errors.New("catalog file is corrupt")
)
