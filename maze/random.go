package maze

import (
	"math/rand"
	"time"
)

// Source is the randomness a generation draws from. *rand.Rand satisfies it.
// A Source must not be shared by generations running at the same time.
type Source interface {
	// Intn returns a uniform value in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a deterministic Source for seed. A zero seed is
// replaced by the current time so every call differs.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randomPosition picks a uniformly distributed cell of g.
func randomPosition(g *Grid, rng Source) Position {
	return Position{X: rng.Intn(g.width), Y: rng.Intn(g.height)}
}
