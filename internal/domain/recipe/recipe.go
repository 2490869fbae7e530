// Package recipe is the saw rule engine: it decodes loosely typed recipe
// documents into predicates and transforms, and evaluates subjects against
// an ordered registry of decoded recipes.
//
// The package performs no I/O and never logs. Names the recipes refer to
// (blocks, items, tags) are resolved through ports.Catalog at evaluation
// time, and TagRandom draws from the ports.RandomSource passed in Env.
package recipe

import "github.com/corey/saw/internal/ports"

// Subject is the thing a predicate is evaluated against, typically a placed
// block. Property values are compared in their string form.
type Subject interface {
	Kind() ports.Identifier
	Properties() map[string]string
}

// BlockState is a plain Subject: a block kind plus its state properties.
type BlockState struct {
	ID    ports.Identifier
	State map[string]string
}

func (b BlockState) Kind() ports.Identifier        { return b.ID }
func (b BlockState) Properties() map[string]string { return b.State }

// ItemCount is one unit of saw output.
type ItemCount struct {
	Item  ports.Identifier `json:"item"`
	Count int              `json:"count"`
}

// Env carries the collaborators evaluation needs. A nil Rand makes
// TagRandom emitters contribute nothing.
type Env struct {
	Catalog ports.Catalog
	Rand    ports.RandomSource
}

// Recipe pairs a predicate with the transform applied when it matches.
// Source names the document it was decoded from and plays no part in matching.
type Recipe struct {
	Predicate Predicate
	Transform Transform
	Source    string
}

// Apply evaluates the recipe's transform.
func (r Recipe) Apply(env Env) []ItemCount {
	return r.Transform.Apply(env)
}
