package math

import (
	m "math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

var (
	randOnce sync.Once
	randSrc  *rand.Rand
)

func defaultRand() *rand.Rand {
	randOnce.Do(func() {
		randSrc = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	})
	return randSrc
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Random returns a float in [0, max) from the shared generator.
func Random(max float32) float32 {
	return defaultRand().Float32() * max
}

// RandomFrom returns a float in [0, max) drawn from r, or from the shared
// generator when r is nil.
func RandomFrom(r *rand.Rand, max float32) float32 {
	if r == nil {
		return Random(max)
	}
	return r.Float32() * max
}

// RandomRange returns a float in [min, max). The sum is kept below max since
// float32 rounding can otherwise land exactly on the upper bound.
func RandomRange(r *rand.Rand, min, max float32) float32 {
	v := min + RandomFrom(r, max-min)
	if v >= max {
		v = m.Nextafter32(max, min)
	}
	return v
}
