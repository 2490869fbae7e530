package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/corey/saw/internal/ports"
)

// yamlCatalog is the YAML-serialized form of ports.CatalogData.
type yamlCatalog struct {
	Blocks    []string            `yaml:"blocks"`
	Items     []string            `yaml:"items"`
	BlockTags map[string][]string `yaml:"block_tags,omitempty"`
	ItemTags  map[string][]string `yaml:"item_tags,omitempty"`
}

// ParseYAML decodes a catalog seed file. Identifiers without a namespace get
// ports.DefaultNamespace; tag members starting with '#' reference other tags.
func ParseYAML(data []byte) (*ports.CatalogData, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return convertCatalog(yc)
}

// MarshalYAML encodes data in the seed file format, tags sorted by name.
func MarshalYAML(data *ports.CatalogData) ([]byte, error) {
	yc := yamlCatalog{
		Blocks:    identStrings(data.Blocks),
		Items:     identStrings(data.Items),
		BlockTags: tagStrings(data.BlockTags),
		ItemTags:  tagStrings(data.ItemTags),
	}
	return yaml.Marshal(yc)
}

func convertCatalog(yc yamlCatalog) (*ports.CatalogData, error) {
	data := &ports.CatalogData{
		BlockTags: make(map[ports.Identifier][]ports.TagEntry, len(yc.BlockTags)),
		ItemTags:  make(map[ports.Identifier][]ports.TagEntry, len(yc.ItemTags)),
	}
	var err error
	if data.Blocks, err = parseIdents("blocks", yc.Blocks); err != nil {
		return nil, err
	}
	if data.Items, err = parseIdents("items", yc.Items); err != nil {
		return nil, err
	}
	if err := parseTags("block_tags", yc.BlockTags, data.BlockTags); err != nil {
		return nil, err
	}
	if err := parseTags("item_tags", yc.ItemTags, data.ItemTags); err != nil {
		return nil, err
	}
	return data, nil
}

func parseIdents(field string, raw []string) ([]ports.Identifier, error) {
	out := make([]ports.Identifier, 0, len(raw))
	for i, s := range raw {
		id, err := ports.ParseIdentifier(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func parseTags(field string, raw map[string][]string, dst map[ports.Identifier][]ports.TagEntry) error {
	for name, members := range raw {
		tag, err := ports.ParseIdentifier(name)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if _, dup := dst[tag]; dup {
			return fmt.Errorf("%s: tag %s declared more than once", field, tag)
		}
		entries := make([]ports.TagEntry, 0, len(members))
		for i, m := range members {
			e, err := ports.ParseTagEntry(m)
			if err != nil {
				return fmt.Errorf("%s[%s][%d]: %w", field, name, i, err)
			}
			entries = append(entries, e)
		}
		dst[tag] = entries
	}
	return nil
}

func identStrings(ids []ports.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func tagStrings(tags map[ports.Identifier][]ports.TagEntry) map[string][]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string][]string, len(tags))
	for name, entries := range tags {
		members := make([]string, len(entries))
		for i, e := range entries {
			members[i] = e.String()
		}
		out[name.String()] = members
	}
	return out
}
