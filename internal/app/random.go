package app

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a ports.RandomSource safe for concurrent evaluations.
type Random struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a PCG-backed source. Seed 0 seeds from the clock;
// any other seed gives a reproducible sequence.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform int in [0, n).
func (r *Random) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}
