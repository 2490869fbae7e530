package ports

import "strings"

// Catalog resolves the names a recipe refers to. It stands in for the host
// game's block/item registries and tag containers. Implementations must be
// safe for concurrent reads; evaluation never writes to a Catalog.
//
// Absence is never an error: an unknown tag resolves to an empty group and
// an unknown item reports ok=false.
type Catalog interface {
	// BlockGroup returns the block kinds in a block tag.
	BlockGroup(tag Identifier) []Identifier

	// ItemGroup returns the items in an item tag, in the tag's iteration order.
	ItemGroup(tag Identifier) []Identifier

	// Item resolves an item identifier to the registered item.
	Item(id Identifier) (Identifier, bool)
}

// CatalogData is the serializable form of a catalog: every known block and
// item plus the tag groups over them. The YAML seed file is converted into
// it and the bbolt store persists it as JSON.
type CatalogData struct {
	Blocks    []Identifier              `json:"blocks"`
	Items     []Identifier              `json:"items"`
	BlockTags map[Identifier][]TagEntry `json:"block_tags"`
	ItemTags  map[Identifier][]TagEntry `json:"item_tags"`
}

// TagEntry is one member of a tag: either a block/item or, written with a
// leading '#', another tag whose members are included in place.
type TagEntry struct {
	ID  Identifier
	Tag bool
}

// ParseTagEntry parses "ns:path" or "#ns:path".
func ParseTagEntry(s string) (TagEntry, error) {
	tag := strings.HasPrefix(s, "#")
	id, err := ParseIdentifier(strings.TrimPrefix(s, "#"))
	if err != nil {
		return TagEntry{}, err
	}
	return TagEntry{ID: id, Tag: tag}, nil
}

func (e TagEntry) String() string {
	if e.Tag {
		return "#" + e.ID.String()
	}
	return e.ID.String()
}

func (e TagEntry) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *TagEntry) UnmarshalText(b []byte) error {
	parsed, err := ParseTagEntry(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
