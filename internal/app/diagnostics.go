package app

import "github.com/corey/saw/internal/ports"

// Fanout sends diagnostics to several sinks in order (e.g. logs and metrics).
type Fanout []ports.Diagnostics

func (f Fanout) RecipeRejected(docID string, err error) {
	for _, d := range f {
		d.RecipeRejected(docID, err)
	}
}

func (f Fanout) ReloadCompleted(r ports.ReloadReport) {
	for _, d := range f {
		d.ReloadCompleted(r)
	}
}
