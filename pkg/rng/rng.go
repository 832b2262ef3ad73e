package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// RNG is a deterministic pseudo-random source. The zero value is not
// usable; construct with New or NewSeeded.
type RNG struct {
	seed   uint64
	source *rand.Rand
}

// NewSeeded returns an RNG whose sequence is fully determined by seed.
func NewSeeded(seed uint64) *RNG {
	return &RNG{seed: seed, source: rand.New(rand.NewSource(int64(seed)))}
}

// New returns an RNG seeded from a non-deterministic source (current time).
// Its own Seed() value is recorded so a caller can log it for later replay.
func New() *RNG {
	seed := uint64(time.Now().UnixNano())
	return NewSeeded(seed)
}

// Seed returns the seed this RNG was constructed from.
func (r *RNG) Seed() uint64 { return r.seed }

// Derive produces an independent child RNG for a named sub-stage, combining
// the parent seed and stage name through SHA-256. Two calls with the same
// stage name on RNGs of the same seed always derive the same child
// sequence; two different stage names never collide in practice.
func (r *RNG) Derive(stage string) *RNG {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], r.seed)
	h.Write(buf[:])
	h.Write([]byte(stage))
	sum := h.Sum(nil)
	return NewSeeded(binary.BigEndian.Uint64(sum[:8]))
}

// WithSeed constructs a scope-local RNG from seed (or a non-deterministic
// one when seed is nil), invokes f with it, and returns f's result. Because
// the RNG is passed by value to f rather than swapped into a shared global,
// there is nothing to restore on f's exit path, including panics: the scope
// simply ends when WithSeed returns.
func WithSeed[T any](seed *uint64, f func(*RNG) T) T {
	var r *RNG
	if seed != nil {
		r = NewSeeded(*seed)
	} else {
		r = New()
	}
	return f(r)
}

// Uniform returns a pseudo-random float64 in [0, 1).
func (r *RNG) Uniform() float64 { return r.source.Float64() }

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool { return r.source.Intn(2) == 1 }

// Chance reports true with probability p (p is clamped to [0, 1]).
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.source.Float64() < p
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int { return r.source.Intn(n) }

// IntRange returns a pseudo-random integer in [min, max] inclusive.
func (r *RNG) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max).
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.source.Float64()*(max-min)
}

// Pick returns a uniformly random element of items. Panics if items is
// empty.
func Pick[T any](r *RNG, items []T) T {
	return items[r.source.Intn(len(items))]
}

// Shuffle randomizes the order of items in place (Fisher-Yates via
// math/rand.Shuffle).
func Shuffle[T any](r *RNG, items []T) {
	r.source.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Weighted performs weighted random selection over items using the
// parallel weights slice. Panics if the slices differ in length or are
// empty; if no weight is positive it falls back to a uniform Pick.
func Weighted[T any](r *RNG, items []T, weights []float64) T {
	if len(items) != len(weights) || len(items) == 0 {
		panic("rng: Weighted requires non-empty equal-length items and weights")
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Pick(r, items)
	}
	target := r.source.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return items[i]
		}
	}
	return items[len(items)-1]
}
