// Package rng is a small, fast, non-cryptographic pseudorandom generator in
// the wyrand family. A Rng can back math/rand/v2 as a Source.
package rng

import (
	"math"
	"math/bits"

	"github.com/shogo82148/int128"
)

const (
	seedOffset = 0x9E377A00
	seedMul    = 0x5851F42D4C957F2D
	increment  = 0xA0761D6478BD642F
	mixMul     = 0xE7037ED1A0B428DB
)

// Rng holds the generator state. It is not safe for concurrent use.
type Rng struct {
	state uint64
}

// New returns a generator for seed. Equal seeds give equal sequences.
func New(seed uint64) *Rng {
	return &Rng{state: bits.RotateLeft64(seed-seedOffset, -7) * seedMul}
}

// Uint64 returns a uniformly distributed 64-bit value.
func (r *Rng) Uint64() uint64 {
	r.state += increment
	hi, lo := bits.Mul64(r.state, r.state*mixMul)
	return hi ^ lo
}

// Uint32 returns a uniformly distributed 32-bit value.
func (r *Rng) Uint32() uint32 {
	return uint32(r.Uint64())
}

// Uint128 returns a uniformly distributed 128-bit value made of two draws,
// the first forming the high half.
func (r *Rng) Uint128() int128.Uint128 {
	hi := r.Uint64()
	lo := r.Uint64()
	return int128.Uint128{H: hi, L: lo}
}

// Uint32n returns a uniform value in [0, n). It panics if n is 0.
//
// Lemire's multiply-shift with rejection only for the biased low region.
func (r *Rng) Uint32n(n uint32) uint32 {
	if n == 0 {
		panic("rng: Uint32n called with n == 0")
	}
	m := uint64(r.Uint32()) * uint64(n)
	if low := uint32(m); low < n {
		threshold := -n % n
		for low < threshold {
			m = uint64(r.Uint32()) * uint64(n)
			low = uint32(m)
		}
	}
	return uint32(m >> 32)
}

// Uint32Range returns a uniform value in [lo, hi). It panics if lo >= hi.
func (r *Rng) Uint32Range(lo, hi uint32) uint32 {
	if lo >= hi {
		panic("rng: Uint32Range called with an empty range")
	}
	return lo + r.Uint32n(hi-lo)
}

// Uint32RangeInclusive returns a uniform value in [lo, hi]. The full span
// [0, math.MaxUint32] is a plain Uint32 draw. It panics if lo > hi.
func (r *Rng) Uint32RangeInclusive(lo, hi uint32) uint32 {
	if lo > hi {
		panic("rng: Uint32RangeInclusive called with an empty range")
	}
	if lo == 0 && hi == math.MaxUint32 {
		return r.Uint32()
	}
	return lo + r.Uint32n(hi-lo+1)
}

// Float64 returns a uniform value in [0, 1) with 52 bits of randomness.
func (r *Rng) Float64() float64 {
	return math.Float64frombits(0x3FF0000000000000|r.Uint64()>>12) - 1
}

// Float32 returns a uniform value in [0, 1) with 23 bits of randomness.
func (r *Rng) Float32() float32 {
	return math.Float32frombits(0x3F800000|r.Uint32()>>9) - 1
}
