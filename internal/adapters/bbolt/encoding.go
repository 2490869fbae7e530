// Catalog blob encoding.
//
// Format v1 is a one-byte version header followed by the JSON encoding of
// ports.CatalogData. Identifiers and tag entries are stored in their text
// form ("ns:path", "#ns:tag"), so a blob can be inspected with bbolt's CLI.
package bbolt

import (
	"encoding/json"
	"fmt"

	"github.com/corey/saw/internal/ports"
)

// formatV1 is the only blob format written.
const formatV1 byte = 1

// encodeCatalog serializes a catalog with the version header.
func encodeCatalog(data *ports.CatalogData) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	buf := make([]byte, 0, len(body)+1)
	buf = append(buf, formatV1)
	return append(buf, body...), nil
}

// decodeCatalog parses a blob written by encodeCatalog.
func decodeCatalog(blob []byte) (*ports.CatalogData, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty catalog blob")
	}
	if blob[0] != formatV1 {
		return nil, fmt.Errorf("unsupported catalog format %d", blob[0])
	}
	var data ports.CatalogData
	if err := json.Unmarshal(blob[1:], &data); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &data, nil
}
