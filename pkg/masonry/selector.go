package masonry

import (
	"math/rand/v2"
)

// RandSource supplies column indices for [RandomInsert]. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// newUnseededRand returns a source seeded from the runtime's entropy.
func newUnseededRand() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// selectColumn returns the column that receives the item at index.
func selectColumn(policy VExpand, index int, heights []float64, rng RandSource) (int, error) {
	switch policy {
	case HeightBalance:
		return shortestColumn(heights), nil
	case OrderInsert:
		return index % len(heights), nil
	case RandomInsert:
		return rng.IntN(len(heights)), nil
	default:
		return 0, invalidStrategy("vertical expansion", int(policy))
	}
}

// shortestColumn returns the index of the first column with the smallest height.
func shortestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h < heights[best] {
			best = i
		}
	}
	return best
}
