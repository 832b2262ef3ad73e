package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := NewSeeded(12345)
	b := NewSeeded(12345)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestDeriveIsolatesStages(t *testing.T) {
	parent := NewSeeded(42)
	s1 := parent.Derive("synthesis")
	s2 := parent.Derive("embedding")
	require.NotEqual(t, s1.Seed(), s2.Seed())

	// Deriving again from a fresh parent with the same seed reproduces
	// the same child sequence (determinism).
	parent2 := NewSeeded(42)
	s1Again := parent2.Derive("synthesis")
	require.Equal(t, s1.Seed(), s1Again.Seed())
}

func TestWeightedZeroWeightsNeverChosen(t *testing.T) {
	r := NewSeeded(7)
	items := []string{"a", "b", "c"}
	weights := []float64{0, 1, 0}
	for i := 0; i < 100; i++ {
		require.Equal(t, "b", Weighted(r, items, weights))
	}
}

func TestWithSeedDeterminism(t *testing.T) {
	seed := uint64(999)
	result1 := WithSeed(&seed, func(r *RNG) int { return r.Intn(1_000_000) })
	result2 := WithSeed(&seed, func(r *RNG) int { return r.Intn(1_000_000) })
	require.Equal(t, result1, result2)
}

func TestShufflePreservesElements(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		seed := uint64(rapid.Uint64().Draw(rt, "seed"))
		r := NewSeeded(seed)
		shuffled := append([]int(nil), items...)
		Shuffle(r, shuffled)

		seen := make(map[int]bool, n)
		for _, v := range shuffled {
			seen[v] = true
		}
		if len(seen) != n {
			rt.Fatalf("shuffle lost or duplicated elements: got %v from %v", shuffled, items)
		}
	})
}
