package agents

import (
	"github.com/talgya/ex-umbris/internal/catalog"
	"github.com/talgya/ex-umbris/internal/entropy"
)

// AdditionalTraitChance is the base probability of drawing one more trait;
// after k picks the chance of another is AdditionalTraitChance^k.
const AdditionalTraitChance = 0.1

// AssignTraits draws a non-empty set of distinct traits from pool, each pick
// weighted by Frequency. Every pick is followed by one continuation draw.
// An empty pool yields nil without consuming any randomness. The pool itself
// is not modified.
func AssignTraits(rng entropy.Source, pool []*catalog.Trait) []*catalog.Trait {
	if len(pool) == 0 {
		return nil
	}

	available := append([]*catalog.Trait(nil), pool...)
	weights := make([]float64, 0, len(available))
	var selected []*catalog.Trait
	chance := 1.0

	for {
		weights = weights[:0]
		for _, t := range available {
			weights = append(weights, t.Frequency)
		}
		idx := entropy.PickWeighted(rng, weights)
		selected = append(selected, available[idx])
		available = append(available[:idx], available[idx+1:]...)

		chance *= AdditionalTraitChance
		// The continuation value is drawn even when nothing is left to pick.
		if rng.Float64() >= chance || len(available) == 0 {
			break
		}
	}
	return selected
}
