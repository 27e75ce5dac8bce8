package generator

import (
	"math/rand"

	"beauty-dashboard/internal/catalog"
)

// choiceWeighted returns items[i] with probability weights[i] / sum(weights).
// Weights must be non-negative with a positive sum; len(weights) must equal
// len(items). The draw is a single cumulative walk, so one rng value per call.
func choiceWeighted[T any](rng *rand.Rand, items []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}

	n := rng.Float64() * total
	for i, w := range weights {
		n -= w
		if n < 0 {
			return items[i]
		}
	}
	// Float accumulation can land exactly on the upper edge.
	return items[len(items)-1]
}

// choicePool draws from a (value, weight) pool.
func choicePool(rng *rand.Rand, pool []catalog.Weighted) string {
	var total float64
	for _, e := range pool {
		total += e.Weight
	}

	n := rng.Float64() * total
	for _, e := range pool {
		n -= e.Weight
		if n < 0 {
			return e.Value
		}
	}
	return pool[len(pool)-1].Value
}

// choiceShipping draws a shipping method by weight.
func choiceShipping(rng *rand.Rand, methods []catalog.ShippingMethod) catalog.ShippingMethod {
	weights := make([]float64, len(methods))
	for i, m := range methods {
		weights[i] = m.Weight
	}
	return choiceWeighted(rng, methods, weights)
}
