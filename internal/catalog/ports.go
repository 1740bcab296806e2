package catalog

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=catalog

// Store handles reading and writing the catalog to durable storage.
type Store interface {
	Load() ([]Book, error)
	Save(books []Book) error
}

// Repository defines the contract for catalog access. Implementations
// keep the catalog in memory and re-persist it wholesale after every
// mutation.
type Repository interface {
	Add(ctx context.Context, book Book) (Book, error)
	Get(ctx context.Context, isbn string) (Book, error)
	List(ctx context.Context, availableOnly bool) ([]Book, error)
	Search(ctx context.Context, query, field string) ([]Book, error)
	Update(ctx context.Context, isbn string, mutate func(*Book)) (Book, error)
	Delete(ctx context.Context, isbn string) error
	ReplaceAll(ctx context.Context, books []Book) error
	Snapshot(ctx context.Context) []Book
}
