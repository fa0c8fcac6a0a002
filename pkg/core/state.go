package core

import "context"

// Store defines the interface for catalog persistence.
type Store interface {
	Open(path string) error
	Close() error
	EnsureSchema(ctx context.Context) error

	CatalogReader
	CatalogWriter

	Stats(ctx context.Context) (*CatalogStats, error)
}
