package recipe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/corey/saw/internal/ports"
)

// Result is the outcome of decoding one document.
type Result struct {
	DocID  string
	Recipe Recipe
	Err    error
}

// DecodeAll decodes docs on up to workers goroutines. Results are returned in
// document order regardless of which worker finished first, so registering
// them in order keeps first-match evaluation deterministic.
//
// Documents that failed to parse upstream (Document.Err) come back as failed
// results without being decoded. The only error returned is ctx's.
func DecodeAll(ctx context.Context, docs []ports.Document, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = decodeDocument(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func decodeDocument(doc ports.Document) Result {
	if doc.Err != nil {
		return Result{DocID: doc.ID, Err: fmt.Errorf("parse: %w", doc.Err)}
	}
	r, err := Decode(doc.Root)
	if err != nil {
		return Result{DocID: doc.ID, Err: err}
	}
	r.Source = doc.ID
	return Result{DocID: doc.ID, Recipe: r}
}
