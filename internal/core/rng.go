package core

import "math/rand/v2"

// Seeds drawn by NewSeed fall in [MinSeed, MaxSeed].
const (
	MinSeed = 1
	MaxSeed = 88888888
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// The same seed and the same sequence of calls always yield the same values.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewSeed draws a fresh seed from the process-wide generator.
func NewSeed() int64 {
	return int64(MinSeed + rand.IntN(MaxSeed-MinSeed+1))
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() int64 { return r.seed }

// IntRange returns a uniform integer in the closed range [low, high].
// It panics if low > high.
func (r *RNG) IntRange(low, high int) int {
	return low + r.r.IntN(high-low+1)
}

// Try draws from [0, 99] and succeeds when the draw is >= p, so a higher p
// makes success less likely. Try(0) always succeeds, Try(100) never does.
func (r *RNG) Try(p int) bool {
	return r.IntRange(0, 99) >= p
}
