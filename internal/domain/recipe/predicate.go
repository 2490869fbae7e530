package recipe

import (
	"slices"

	"github.com/corey/saw/internal/ports"
)

// Predicate decides whether a recipe applies to a subject.
// The implementations are TagMatch and ExactMatch.
type Predicate interface {
	predicate()
}

// TagMatch matches any block whose kind is in the block tag.
type TagMatch struct {
	Tag ports.Identifier
}

// ExactMatch matches one block kind in a specific state. Every entry of
// State must be present on the subject with an equal value. An ExactMatch
// with an empty State never matches.
type ExactMatch struct {
	Block ports.Identifier
	State map[string]string
}

func (TagMatch) predicate()   {}
func (ExactMatch) predicate() {}

// Matches reports whether p accepts s. Unknown tags resolve to empty groups,
// so a TagMatch on a missing tag matches nothing.
func Matches(p Predicate, s Subject, c ports.Catalog) bool {
	switch p := p.(type) {
	case TagMatch:
		if c == nil {
			return false
		}
		return slices.Contains(c.BlockGroup(p.Tag), s.Kind())
	case ExactMatch:
		if s.Kind() != p.Block || len(p.State) == 0 {
			return false
		}
		props := s.Properties()
		for k, want := range p.State {
			if got, ok := props[k]; !ok || got != want {
				return false
			}
		}
		return true
	default:
		return false
	}
}
