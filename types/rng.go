package types

import (
	"fmt"
	"math"
	"math/rand"
)

// RngValue is an isolated pseudo-random generator instance. The stream is
// boxed: Clone shares the box, so draws through any language-level copy
// (including a byref parameter) advance the same sequence. Two RngValues
// built with the same seed produce identical sequences independent of each
// other and of the global stream.
type RngValue struct {
	src  *rand.Rand
	seed int64
}

// NewRng creates an isolated generator seeded with seed
func NewRng(seed int64) *RngValue {
	return &RngValue{src: rand.New(rand.NewSource(seed)), seed: seed}
}

func (v *RngValue) Kind() Kind     { return KindRng }
func (v *RngValue) Truthy() bool   { return true }
func (v *RngValue) Clone() Value   { return v } // shared box
func (v *RngValue) String() string { return fmt.Sprintf("<rng seed=%d>", v.seed) }
func (v *RngValue) Equal(other Value) bool {
	o, ok := other.(*RngValue)
	return ok && v == o
}

// Reseed resets the stream to a fresh sequence for seed
func (v *RngValue) Reseed(seed int64) {
	v.src = rand.New(rand.NewSource(seed))
	v.seed = seed
}

// Rand draws an integer in [0, max], inclusive. max < 0 is the caller's
// error and yields 0.
func (v *RngValue) Rand(max int64) int64 {
	if max < 0 {
		return 0
	}
	if max == math.MaxInt64 {
		// max + 1 would overflow Int63n's argument
		return v.src.Int63()
	}
	return v.src.Int63n(max + 1)
}

// RandRange draws an integer in [lo, hi], inclusive
func (v *RngValue) RandRange(lo, hi int64) int64 {
	if hi < lo {
		return lo
	}
	// Width computed unsigned: hi - lo can exceed MaxInt64
	span := uint64(hi) - uint64(lo)
	if span < math.MaxInt64 {
		return lo + v.src.Int63n(int64(span)+1)
	}
	// The span covers at least half the uint64 range; redraw until a raw
	// sample fits
	for {
		if r := v.src.Uint64(); r <= span {
			return lo + int64(r)
		}
	}
}

// RandFloat draws a float in [0, 1)
func (v *RngValue) RandFloat() float64 {
	return v.src.Float64()
}
