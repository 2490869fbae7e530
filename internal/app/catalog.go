package app

import (
	"fmt"
	"os"

	"github.com/corey/saw/internal/domain/catalog"
	"github.com/corey/saw/internal/ports"
)

// ReadCatalogFile parses a YAML catalog seed file.
func ReadCatalogFile(path string) (*ports.CatalogData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	data, err := catalog.ParseYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ImportCatalog validates a seed file and stores it under name.
func ImportCatalog(store ports.CatalogStore, name, path string) (*catalog.Catalog, error) {
	data, err := ReadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := store.SaveCatalog(name, data); err != nil {
		return nil, fmt.Errorf("save catalog %q: %w", name, err)
	}
	return cat, nil
}

// OpenCatalog builds the evaluation catalog. A seed file takes precedence
// over the stored catalog; with neither available the catalog is empty and
// every tag and item reference resolves to nothing.
func OpenCatalog(store ports.CatalogStore, name, path string) (*catalog.Catalog, error) {
	var (
		data *ports.CatalogData
		err  error
	)
	switch {
	case path != "":
		data, err = ReadCatalogFile(path)
	case store != nil:
		data, err = store.LoadCatalog(name)
		if err != nil {
			err = fmt.Errorf("load catalog %q: %w", name, err)
		}
	}
	if err != nil {
		return nil, err
	}
	return catalog.New(data)
}
