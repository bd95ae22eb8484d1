package core

import "math/rand/v2"

// ViewPointMax bounds the view point draws used to offset noise sampling.
const ViewPointMax = 999999

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float returns a value in [min, max). When max <= min it returns min.
func (r *RNG) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.r.Float64()*(max-min)
}

// ViewPoint derives the sampling origin for a seed from a fresh generator, so
// every caller asking for the same seed sees the same point regardless of
// what else has been drawn.
func ViewPoint(seed uint32) (float64, float64) {
	r := NewRNG(seed)
	x := r.Float(0, ViewPointMax)
	y := r.Float(0, ViewPointMax)
	return x, y
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
