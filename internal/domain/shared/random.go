package shared

import (
	"math/rand"

	"github.com/google/uuid"
)

// Random is the only source of randomness inside turn generation. Every
// consumer draws from the one instance owned by the current turn so that a
// given seed and year always reproduce the same world.
type Random struct {
	rng *rand.Rand
}

// NewRandom seeds a generator for one game year.
func NewRandom(seed int64, year int) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed ^ int64(year)*0x5DEECE66D))}
}

// Float64 returns a value in [0, 1).
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// IntRange returns a value in [low, high].
func (r *Random) IntRange(low, high int) int {
	if high <= low {
		return low
	}
	return low + r.rng.Intn(high-low+1)
}

// Chance rolls true with probability p.
func (r *Random) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.rng.Float64() < p
}

// GUID draws a version 4 UUID from the seeded stream.
func (r *Random) GUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(r.rng)
	if err != nil {
		// rand.Rand.Read never fails
		panic(err)
	}
	return id
}

// Shuffle permutes n elements with swap.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rng.Shuffle(n, swap)
}
