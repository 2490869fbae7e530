// Package catalog provides an in-memory ports.Catalog: the blocks, items and
// tag groups recipes are resolved against. Nested tags are flattened once at
// construction so lookups during evaluation are plain map reads.
package catalog

import (
	"fmt"
	"sort"

	"github.com/corey/saw/internal/ports"
)

// Catalog implements ports.Catalog. It is immutable after New and safe for
// concurrent use.
type Catalog struct {
	blocks    map[ports.Identifier]bool
	items     map[ports.Identifier]bool
	blockTags map[ports.Identifier][]ports.Identifier
	itemTags  map[ports.Identifier][]ports.Identifier
}

// New builds a Catalog from its serializable form. Tag members must be
// declared blocks (block tags) or items (item tags), nested tag references
// must exist, and nesting must not be cyclic.
func New(data *ports.CatalogData) (*Catalog, error) {
	if data == nil {
		data = &ports.CatalogData{}
	}
	c := &Catalog{
		blocks: make(map[ports.Identifier]bool, len(data.Blocks)),
		items:  make(map[ports.Identifier]bool, len(data.Items)),
	}
	for _, b := range data.Blocks {
		c.blocks[b] = true
	}
	for _, it := range data.Items {
		c.items[it] = true
	}

	var err error
	if c.blockTags, err = flattenTags(data.BlockTags, c.blocks); err != nil {
		return nil, fmt.Errorf("block tags: %w", err)
	}
	if c.itemTags, err = flattenTags(data.ItemTags, c.items); err != nil {
		return nil, fmt.Errorf("item tags: %w", err)
	}
	return c, nil
}

// Empty returns a catalog that knows nothing.
func Empty() *Catalog {
	c, _ := New(nil)
	return c
}

// BlockGroup returns the blocks in a block tag.
func (c *Catalog) BlockGroup(tag ports.Identifier) []ports.Identifier {
	return c.blockTags[tag]
}

// ItemGroup returns the items in an item tag, in declaration order with
// nested tags expanded in place.
func (c *Catalog) ItemGroup(tag ports.Identifier) []ports.Identifier {
	return c.itemTags[tag]
}

// Item resolves a registered item.
func (c *Catalog) Item(id ports.Identifier) (ports.Identifier, bool) {
	if c.items[id] {
		return id, true
	}
	return ports.Identifier{}, false
}

// Stats returns block, item, block tag and item tag counts.
func (c *Catalog) Stats() (blocks, items, blockTags, itemTags int) {
	return len(c.blocks), len(c.items), len(c.blockTags), len(c.itemTags)
}

// flattenTags expands nested tag references depth-first, keeping the first
// occurrence of each member.
func flattenTags(tags map[ports.Identifier][]ports.TagEntry, known map[ports.Identifier]bool) (map[ports.Identifier][]ports.Identifier, error) {
	out := make(map[ports.Identifier][]ports.Identifier, len(tags))
	visiting := make(map[ports.Identifier]bool)

	var expand func(tag ports.Identifier) ([]ports.Identifier, error)
	expand = func(tag ports.Identifier) ([]ports.Identifier, error) {
		if members, ok := out[tag]; ok {
			return members, nil
		}
		entries, ok := tags[tag]
		if !ok {
			return nil, fmt.Errorf("unknown tag #%s", tag)
		}
		if visiting[tag] {
			return nil, fmt.Errorf("cycle through tag #%s", tag)
		}
		visiting[tag] = true
		defer delete(visiting, tag)

		seen := make(map[ports.Identifier]bool)
		members := make([]ports.Identifier, 0, len(entries))
		add := func(id ports.Identifier) {
			if !seen[id] {
				seen[id] = true
				members = append(members, id)
			}
		}
		for _, e := range entries {
			if !e.Tag {
				if !known[e.ID] {
					return nil, fmt.Errorf("tag #%s: unknown member %s", tag, e.ID)
				}
				add(e.ID)
				continue
			}
			nested, err := expand(e.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range nested {
				add(id)
			}
		}
		out[tag] = members
		return members, nil
	}

	// Sorted so the first reported error is stable.
	for _, name := range SortedTagNames(tags) {
		if _, err := expand(name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SortedTagNames returns the tag names of a tag map in string order.
func SortedTagNames(tags map[ports.Identifier][]ports.TagEntry) []ports.Identifier {
	names := make([]ports.Identifier, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names
}
