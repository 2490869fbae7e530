// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// CatalogStore persists catalogs to durable storage.
// The backing store (bbolt) keys each catalog by name. Concurrent reads are
// safe; writes are serialized by the adapter.
//
// Crash safety: SaveCatalog must be transactional. A crash mid-write must not
// corrupt a previously committed catalog.
type CatalogStore interface {
	// SaveCatalog persists a catalog under name, replacing any prior catalog.
	SaveCatalog(name string, data *CatalogData) error

	// LoadCatalog retrieves a catalog.
	// Returns nil, nil if no catalog exists under name.
	LoadCatalog(name string) (*CatalogData, error)

	// ListCatalogs returns the stored catalog names in key order.
	ListCatalogs() ([]string, error)

	// DeleteCatalog removes a catalog.
	// Idempotent: deleting a nonexistent catalog is not an error.
	DeleteCatalog(name string) error
}
