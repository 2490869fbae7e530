// Package app wires together adapters and the recipe engine.
// Engine owns the reload lifecycle: it pulls documents from a source, decodes
// them off to the side, and publishes the finished registry atomically so
// evaluations never see a partially rebuilt set.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/corey/saw/internal/domain/recipe"
	"github.com/corey/saw/internal/ports"
)

// EvalObserver is told about every evaluation. prom.Metrics implements it.
type EvalObserver interface {
	Evaluated(matched bool)
}

// Config holds the collaborators for an Engine.
type Config struct {
	Source      ports.DocumentSource
	Catalog     ports.Catalog
	Diagnostics ports.Diagnostics  // optional
	Random      ports.RandomSource // default: time-seeded NewRandom(0)
	Observer    EvalObserver       // optional
	Workers     int                // decode concurrency (default 1)
}

// Engine serves evaluations against the most recently published registry.
type Engine struct {
	source   ports.DocumentSource
	catalog  ports.Catalog
	diag     ports.Diagnostics
	rand     ports.RandomSource
	observer EvalObserver
	workers  int

	current  atomic.Pointer[recipe.Registry]
	reloadMu sync.Mutex // serializes reloads (single writer)
}

// New creates an Engine with an empty registry. Call Reload to load recipes.
func New(cfg Config) (*Engine, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("document source required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if cfg.Random == nil {
		cfg.Random = NewRandom(0)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	e := &Engine{
		source:   cfg.Source,
		catalog:  cfg.Catalog,
		diag:     cfg.Diagnostics,
		rand:     cfg.Random,
		observer: cfg.Observer,
		workers:  cfg.Workers,
	}
	e.current.Store(recipe.NewRegistry())
	return e, nil
}

// Reload rebuilds the registry from the document source and publishes it.
// Documents that fail to parse or decode are reported to Diagnostics and
// skipped. On error (source failure or ctx cancellation) the previously
// published registry stays in place.
func (e *Engine) Reload(ctx context.Context) (ports.ReloadReport, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	start := time.Now()
	report := ports.ReloadReport{ID: uuid.NewString()}

	docs, err := e.source.Documents(ctx)
	if err != nil {
		return report, fmt.Errorf("list documents: %w", err)
	}
	report.Documents = len(docs)

	results, err := recipe.DecodeAll(ctx, docs, e.workers)
	if err != nil {
		return report, fmt.Errorf("decode: %w", err)
	}

	next := recipe.NewRegistry()
	for _, res := range results {
		if res.Err != nil {
			report.Rejected++
			if e.diag != nil {
				e.diag.RecipeRejected(res.DocID, res.Err)
			}
			continue
		}
		next.Register(res.Recipe)
		report.Accepted++
		report.Noops += res.Recipe.Transform.Noops()
	}

	e.current.Store(next)
	report.Duration = time.Since(start)
	if e.diag != nil {
		e.diag.ReloadCompleted(report)
	}
	return report, nil
}

// Registry returns the published registry. Callers must treat it as read-only.
func (e *Engine) Registry() *recipe.Registry {
	return e.current.Load()
}

// Env returns the evaluation environment.
func (e *Engine) Env() recipe.Env {
	return recipe.Env{Catalog: e.catalog, Rand: e.rand}
}

// Match returns the first recipe accepting s from the published registry.
func (e *Engine) Match(s recipe.Subject) (recipe.Recipe, bool) {
	rec, ok := e.Registry().Match(s, e.Env())
	if e.observer != nil {
		e.observer.Evaluated(ok)
	}
	return rec, ok
}

// MatchAll returns every recipe accepting s, in registration order.
func (e *Engine) MatchAll(s recipe.Subject) []recipe.Recipe {
	matched := e.Registry().MatchAll(s, e.Env())
	if e.observer != nil {
		e.observer.Evaluated(len(matched) > 0)
	}
	return matched
}

// Evaluate returns the first matching recipe's output for s.
func (e *Engine) Evaluate(s recipe.Subject) []recipe.ItemCount {
	rec, ok := e.Match(s)
	if !ok {
		return nil
	}
	return rec.Apply(e.Env())
}

// EvaluateAll returns the output of every matching recipe in registration order.
func (e *Engine) EvaluateAll(s recipe.Subject) [][]recipe.ItemCount {
	var out [][]recipe.ItemCount
	env := e.Env()
	for _, rec := range e.MatchAll(s) {
		out = append(out, rec.Apply(env))
	}
	return out
}
