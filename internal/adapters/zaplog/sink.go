// Package zaplog implements ports.Diagnostics on a zap logger.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/corey/saw/internal/ports"
)

// Sink logs reload diagnostics.
type Sink struct {
	log *zap.Logger
}

// NewSink returns a Sink writing to log. A nil log discards everything.
func NewSink(log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{log: log}
}

// RecipeRejected logs a document that failed to parse or decode.
func (s *Sink) RecipeRejected(docID string, err error) {
	s.log.Error("could not load saw recipe",
		zap.String("recipe", docID),
		zap.Error(err))
}

// ReloadCompleted logs the reload summary. Reloads with rejections or no-op
// emitters are logged at warn level.
func (s *Sink) ReloadCompleted(r ports.ReloadReport) {
	fields := []zap.Field{
		zap.String("reload", r.ID),
		zap.Int("documents", r.Documents),
		zap.Int("accepted", r.Accepted),
		zap.Int("rejected", r.Rejected),
		zap.Int("noop_emitters", r.Noops),
		zap.Duration("took", r.Duration),
	}
	if r.Rejected > 0 || r.Noops > 0 {
		s.log.Warn("saw recipes reloaded with problems", fields...)
		return
	}
	s.log.Info("saw recipes reloaded", fields...)
}

// NewLogger builds the process logger: JSON production output, or a
// development console encoder when verbose is set. level is a zap level name.
func NewLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = lvl
	}
	return config.Build()
}
