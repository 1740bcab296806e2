package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, _ := newTestRepository(t)
	return NewService(repo)
}

func TestService_RegisterListsInCallOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entries := []struct{ isbn, title, author string }{
		{"1111111111", "First", "A"},
		{"2222222222", "Second", "B"},
		{"3333333333", "Third", "C"},
	}
	for _, e := range entries {
		_, err := svc.Register(ctx, e.isbn, e.title, e.author)
		require.NoError(t, err)
	}

	books, err := svc.ListBooks(ctx, false)
	require.NoError(t, err)
	require.Len(t, books, len(entries))
	for i, b := range books {
		assert.Equal(t, entries[i].isbn, b.ISBN)
		assert.Equal(t, entries[i].title, b.Title)
		assert.True(t, b.Available)
		assert.Empty(t, b.Borrower)
	}
}

func TestService_RegisterTrimsAndNormalizes(t *testing.T) {
	svc := newTestService(t)

	book, err := svc.Register(context.Background(), "978-0-14-312854-0", "  Sapiens  ", " Yuval Noah Harari ")
	require.NoError(t, err)
	assert.Equal(t, "9780143128540", book.ISBN)
	assert.Equal(t, "Sapiens", book.Title)
	assert.Equal(t, "Yuval Noah Harari", book.Author)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Original", "Author")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "1111111111", "Copy", "Other")
	assert.ErrorIs(t, err, ErrDuplicateISBN)

	books, err := svc.ListBooks(ctx, false)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Original", books[0].Title)
}

func TestService_BorrowReturnRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.Register(ctx, "1111111111", "Title", "Author")
	require.NoError(t, err)

	borrowed, err := svc.Borrow(ctx, "1111111111", "Alice")
	require.NoError(t, err)
	assert.False(t, borrowed.Available)
	assert.Equal(t, "Alice", borrowed.Borrower)
	require.NotNil(t, borrowed.BorrowedAt)

	returned, err := svc.Return(ctx, "1111111111")
	require.NoError(t, err)

	// The toggle round-trips to the exact pre-borrow state.
	assert.Equal(t, before, returned)
}

func TestService_BorrowAlreadyBorrowed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Title", "Author")
	require.NoError(t, err)
	_, err = svc.Borrow(ctx, "1111111111", "Alice")
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, "1111111111", "Bob")
	assert.ErrorIs(t, err, ErrAlreadyBorrowed)

	// Alice still has it.
	book, err := svc.Get(ctx, "1111111111")
	require.NoError(t, err)
	assert.Equal(t, "Alice", book.Borrower)
}

func TestService_ReturnNotBorrowed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Title", "Author")
	require.NoError(t, err)

	_, err = svc.Return(ctx, "1111111111")
	assert.ErrorIs(t, err, ErrNotBorrowed)
}

func TestService_BorrowUnknownISBN(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Borrow(context.Background(), "0000000000", "Alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SapiensScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "9780143128540", "Sapiens", "Yuval Noah Harari")
	require.NoError(t, err)

	available, err := svc.ListBooks(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Sapiens", available[0].Title)

	_, err = svc.Borrow(ctx, "9780143128540", "Alice")
	require.NoError(t, err)

	available, err = svc.ListBooks(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, available)

	assert.Contains(t, svc.Summary(ctx), AuthorCount{Author: "Yuval Noah Harari", Count: 1})
}

func TestService_SummaryFirstSeenOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entries := []struct{ isbn, title, author string }{
		{"1111111111", "Norwegian Wood", "Haruki Murakami"},
		{"2222222222", "Foundation", "Isaac Asimov"},
		{"3333333333", "Kafka on the Shore", "Haruki Murakami"},
		{"4444444444", "I, Robot", "Isaac Asimov"},
		{"5555555555", "Emma", "Jane Austen"},
	}
	for _, e := range entries {
		_, err := svc.Register(ctx, e.isbn, e.title, e.author)
		require.NoError(t, err)
	}

	// Authors appear in first-seen order, not alphabetical.
	assert.Equal(t, []AuthorCount{
		{Author: "Haruki Murakami", Count: 2},
		{Author: "Isaac Asimov", Count: 2},
		{Author: "Jane Austen", Count: 1},
	}, svc.Summary(ctx))
}

func TestService_RemoveUnknownLeavesCatalogUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Title", "Author")
	require.NoError(t, err)

	err = svc.Remove(ctx, "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	books, err := svc.ListBooks(ctx, false)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestService_ImportReplacesCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Old", "Author")
	require.NoError(t, err)

	imported, err := svc.Import(ctx, []BookInput{
		{ISBN: "978-0-14-312854-0", Title: "Sapiens", Author: "Yuval Noah Harari"},
		{ISBN: "9780062316097", Title: "Homo Deus", Author: "Yuval Noah Harari"},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "9780143128540", imported[0].ISBN)

	books, err := svc.ListBooks(ctx, false)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Sapiens", books[0].Title)
}

func TestService_Reset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "1111111111", "Title", "Author")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	books, err := svc.ListBooks(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, books)
}
