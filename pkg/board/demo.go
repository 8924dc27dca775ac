package board

import (
	"fmt"
	"math/rand/v2"
)

// Demo item dimensions.
const (
	DemoWidth     = 150
	DemoMinHeight = 50
	DemoMaxHeight = 200
)

// Demo returns n items of width [DemoWidth] with random heights in
// [DemoMinHeight, DemoMaxHeight]. The same seed yields the same set.
func Demo(n int, seed uint64) ItemSet {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	s := ItemSet{Items: make([]ItemSpec, n)}
	for i := range s.Items {
		h := DemoMinHeight + rng.IntN(DemoMaxHeight-DemoMinHeight+1)
		s.Items[i] = ItemSpec{
			ID:     fmt.Sprintf("item-%d", i+1),
			Label:  fmt.Sprintf("Label #%d", i+1),
			Width:  DemoWidth,
			Height: float64(h),
		}
	}
	return s
}
