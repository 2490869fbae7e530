package recipe

// Registry is an ordered, append-only list of recipes. Evaluation is
// first-match in registration order, so overlapping predicates are legal and
// the earlier recipe wins.
//
// Registry does no locking. Build a new one per reload and publish it only
// once complete; see app.Engine.
type Registry struct {
	recipes []Recipe
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends r. It never deduplicates or validates against existing
// recipes.
func (r *Registry) Register(rec Recipe) {
	r.recipes = append(r.recipes, rec)
}

// Reset empties the registry and drops every reference to prior recipes.
func (r *Registry) Reset() {
	clear(r.recipes)
	r.recipes = nil
}

// Len returns the number of registered recipes.
func (r *Registry) Len() int {
	return len(r.recipes)
}

// Recipes returns a copy of the registered recipes in order.
func (r *Registry) Recipes() []Recipe {
	out := make([]Recipe, len(r.recipes))
	copy(out, r.recipes)
	return out
}

// Match returns the first recipe whose predicate accepts s.
func (r *Registry) Match(s Subject, env Env) (Recipe, bool) {
	for _, rec := range r.recipes {
		if Matches(rec.Predicate, s, env.Catalog) {
			return rec, true
		}
	}
	return Recipe{}, false
}

// Evaluate returns the output of the first matching recipe, or nothing when
// no recipe matches.
func (r *Registry) Evaluate(s Subject, env Env) []ItemCount {
	rec, ok := r.Match(s, env)
	if !ok {
		return nil
	}
	return rec.Apply(env)
}

// MatchAll returns every recipe whose predicate accepts s, in registration order.
func (r *Registry) MatchAll(s Subject, env Env) []Recipe {
	var out []Recipe
	for _, rec := range r.recipes {
		if Matches(rec.Predicate, s, env.Catalog) {
			out = append(out, rec)
		}
	}
	return out
}

// EvaluateAll returns the output of every matching recipe, in registration order.
func (r *Registry) EvaluateAll(s Subject, env Env) [][]ItemCount {
	matched := r.MatchAll(s, env)
	if len(matched) == 0 {
		return nil
	}
	out := make([][]ItemCount, len(matched))
	for i, rec := range matched {
		out[i] = rec.Apply(env)
	}
	return out
}
