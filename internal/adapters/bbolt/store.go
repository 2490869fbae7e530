// Package bbolt implements the ports.CatalogStore interface using bbolt
// (embedded B+ tree). All catalogs live in one "catalogs" bucket keyed by
// name. Writes are transactional: a crash mid-write cannot corrupt a
// previously committed catalog.
package bbolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/saw/internal/ports"
)

var bucketCatalogs = []byte("catalogs")

// Store implements ports.CatalogStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path, creating
// the parent directory when needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCatalog persists a catalog under name, replacing any prior one.
func (s *Store) SaveCatalog(name string, data *ports.CatalogData) error {
	if data == nil {
		return fmt.Errorf("nil catalog")
	}
	if name == "" {
		return fmt.Errorf("empty catalog name")
	}
	blob, err := encodeCatalog(data)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCatalogs)
		if err != nil {
			return err
		}
		return b.Put([]byte(name), blob)
	})
}

// LoadCatalog retrieves a catalog.
// Returns nil, nil if no catalog exists under name.
func (s *Store) LoadCatalog(name string) (*ports.CatalogData, error) {
	var blob []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalogs)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(name)); v != nil {
			blob = make([]byte, len(v))
			copy(blob, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	data, err := decodeCatalog(blob)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", name, err)
	}
	return data, nil
}

// ListCatalogs returns stored catalog names in key order.
func (s *Store) ListCatalogs() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalogs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// DeleteCatalog removes a catalog.
// Idempotent: deleting a nonexistent catalog is not an error.
func (s *Store) DeleteCatalog(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalogs)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}
