package sim

import "math/rand"

// Rand is the simulation's deterministic random stream. Every draw that
// can influence game state must come from here; given the same seed and
// the same sequence of calls, two peers see identical values.
type Rand struct {
	src *rand.Rand
}

// NewRand returns a stream seeded with the given value.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// N returns a value in [0, limit). A limit of 0 returns 0.
func (r *Rand) N(limit uint32) uint32 {
	if limit == 0 {
		return 0
	}
	return uint32(r.src.Int63n(int64(limit)))
}

// Variation returns val adjusted by up to ±5%, rounded toward zero.
func (r *Rand) Variation(val int64) int64 {
	return val * int64(95000+r.N(10001)) / 100000
}
