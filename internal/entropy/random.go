// Package entropy provides the seeded randomness shared by generation and simulation.
// Every draw in the core goes through a single Source so that a run can be
// replayed exactly from its seed.
package entropy

import "math/rand"

// Source is the subset of *rand.Rand the core draws from.
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63() int64
}

// New returns a deterministic source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Roll sums count rolls of a die with the given number of sides (each 1..sides).
func Roll(rng Source, count, sides int) int {
	if count <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += rng.Intn(sides) + 1
	}
	return total
}

// PickWeighted selects an index with probability proportional to its weight
// using cumulative-weight sampling: a uniform value over the total weight has
// each weight subtracted in order until it is no longer positive.
// Floating-point leftovers fall through to the last index.
// Returns -1 without drawing when weights is empty.
func PickWeighted(rng Source, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	value := rng.Float64() * total
	for i, w := range weights {
		value -= w
		if value <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
