package ports

import "time"

// ReloadReport summarizes one reload cycle.
type ReloadReport struct {
	ID        string
	Documents int
	Accepted  int
	Rejected  int
	Noops     int // emitters that decoded to no-ops across accepted recipes
	Duration  time.Duration
}

// Diagnostics receives reload outcomes. The engine never formats or logs
// decode failures itself; it hands the structured error to this sink.
type Diagnostics interface {
	// RecipeRejected is called once per document that failed to parse or decode.
	RecipeRejected(docID string, err error)

	// ReloadCompleted is called after the new registry has been published.
	ReloadCompleted(report ReloadReport)
}

// RandomSource picks uniformly from [0, n). n is always > 0.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}
