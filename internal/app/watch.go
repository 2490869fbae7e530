package app

import (
	"context"

	"github.com/corey/saw/internal/ports"
)

// Watch reloads the engine whenever w reports a change under dir, until ctx
// is done. Bursts of changes coalesce into a single pending reload. Reload
// errors are passed to onError (which may be nil) and do not stop watching.
func (e *Engine) Watch(ctx context.Context, w ports.Watcher, dir string, onError func(error)) error {
	pending := make(chan struct{}, 1)
	err := w.Watch(dir, func(string) {
		select {
		case pending <- struct{}{}:
		default: // a reload is already queued
		}
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			if _, err := e.Reload(ctx); err != nil && onError != nil && ctx.Err() == nil {
				onError(err)
			}
		}
	}
}
