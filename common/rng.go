package common

import "math/rand"

// NewRand returns a deterministic source. A zero seed is mapped to 1 so that
// an unset config value still produces a reproducible run.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}
