package recipe

import "github.com/corey/saw/internal/ports"

// Emitter produces part of a transform's output.
// The implementations are TagAll, TagRandom, Item and Noop.
type Emitter interface {
	emitter()
}

// TagAll emits every item of an item tag, Amount of each.
type TagAll struct {
	Tag    ports.Identifier
	Amount int
}

// TagRandom emits one item picked uniformly from an item tag.
type TagRandom struct {
	Tag    ports.Identifier
	Amount int
}

// Item emits a single registered item.
type Item struct {
	ID     ports.Identifier
	Amount int
}

// Noop stands in for an output entry that could not be decoded.
// It always contributes nothing.
type Noop struct {
	Reason string
}

func (TagAll) emitter()    {}
func (TagRandom) emitter() {}
func (Item) emitter()      {}
func (Noop) emitter()      {}

// Transform is an ordered list of emitters.
type Transform []Emitter

// Apply concatenates the emitters' outputs in declared order. An emitter
// whose tag or item does not resolve, or whose amount is below 1,
// contributes nothing.
func (t Transform) Apply(env Env) []ItemCount {
	var out []ItemCount
	for _, e := range t {
		out = appendEmitted(out, e, env)
	}
	return out
}

// Noops counts the emitters that decoded to no-ops.
func (t Transform) Noops() int {
	n := 0
	for _, e := range t {
		if _, ok := e.(Noop); ok {
			n++
		}
	}
	return n
}

func appendEmitted(out []ItemCount, e Emitter, env Env) []ItemCount {
	if env.Catalog == nil || amountOf(e) < 1 {
		return out
	}
	switch e := e.(type) {
	case TagAll:
		for _, item := range env.Catalog.ItemGroup(e.Tag) {
			out = append(out, ItemCount{Item: item, Count: e.Amount})
		}
	case TagRandom:
		group := env.Catalog.ItemGroup(e.Tag)
		if len(group) == 0 || env.Rand == nil {
			return out
		}
		out = append(out, ItemCount{Item: group[env.Rand.IntN(len(group))], Count: e.Amount})
	case Item:
		if item, ok := env.Catalog.Item(e.ID); ok {
			out = append(out, ItemCount{Item: item, Count: e.Amount})
		}
	}
	return out
}

// amountOf returns the count an emitter produces per item; 0 for Noop.
func amountOf(e Emitter) int {
	switch e := e.(type) {
	case TagAll:
		return e.Amount
	case TagRandom:
		return e.Amount
	case Item:
		return e.Amount
	default:
		return 0
	}
}
