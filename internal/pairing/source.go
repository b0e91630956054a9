package pairing

import "math/rand/v2"

// Source shuffles a sequence of n elements through swap.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// globalSource shuffles with the runtime-seeded, goroutine-safe top-level
// generator of math/rand/v2.
type globalSource struct{}

func (globalSource) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// NewSeededSource returns a deterministic Source for reproducible draws.
// The returned source is not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
