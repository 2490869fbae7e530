package ports

import "context"

// Document is one parsed recipe document.
//
// Root is the generic tree produced by the parser: map[string]any, []any and
// scalars. When the text could not be parsed, Root is nil and Err says why;
// the orchestrator reports such documents and moves on.
type Document struct {
	ID   string
	Root any
	Err  error
}

// DocumentSource supplies the recipe documents for one reload, in a stable
// order. Recipe evaluation is first-match, so the order is significant.
type DocumentSource interface {
	Documents(ctx context.Context) ([]Document, error)
}
