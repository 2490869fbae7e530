package recipe

import (
	"github.com/corey/saw/internal/ports"
)

func id(s string) ports.Identifier { return ports.MustIdentifier(s) }

func ids(ss ...string) []ports.Identifier {
	out := make([]ports.Identifier, len(ss))
	for i, s := range ss {
		out[i] = id(s)
	}
	return out
}

// fakeCatalog is a map-backed ports.Catalog.
type fakeCatalog struct {
	blockTags map[ports.Identifier][]ports.Identifier
	itemTags  map[ports.Identifier][]ports.Identifier
	items     map[ports.Identifier]bool
}

func (c fakeCatalog) BlockGroup(tag ports.Identifier) []ports.Identifier { return c.blockTags[tag] }
func (c fakeCatalog) ItemGroup(tag ports.Identifier) []ports.Identifier  { return c.itemTags[tag] }
func (c fakeCatalog) Item(i ports.Identifier) (ports.Identifier, bool) {
	return i, c.items[i]
}

// testCatalog knows two log blocks, a planks tag of three items, and a stick.
func testCatalog() fakeCatalog {
	return fakeCatalog{
		blockTags: map[ports.Identifier][]ports.Identifier{
			id("x:logs"): ids("minecraft:oak_log", "minecraft:birch_log"),
		},
		itemTags: map[ports.Identifier][]ports.Identifier{
			id("x:planks"): ids("x:oak_plank", "x:birch_plank", "x:ash_plank"),
		},
		items: map[ports.Identifier]bool{
			id("x:plank"):         true,
			id("minecraft:stick"): true,
		},
	}
}

// seqRand returns the queued values in order, modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func block(kind string, state map[string]string) BlockState {
	return BlockState{ID: id(kind), State: state}
}
