package tile

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGridCloneIndependence(t *testing.T) {
	g := NewGrid(5, 5, Wall)
	g.Set(2, 2, Floor)
	clone := g.Clone()
	clone.Set(2, 2, Corridor)

	require.Equal(t, Floor, g.At(2, 2), "source must be unaffected by clone mutation")
	require.Equal(t, Corridor, clone.At(2, 2))
}

func TestFillBorder(t *testing.T) {
	g := NewGrid(8, 6, Floor)
	g.FillBorder(Wall)
	for x := 0; x < 8; x++ {
		require.Equal(t, Wall, g.At(x, 0))
		require.Equal(t, Wall, g.At(x, 5))
	}
	for y := 0; y < 6; y++ {
		require.Equal(t, Wall, g.At(0, y))
		require.Equal(t, Wall, g.At(7, y))
	}
	require.Equal(t, Floor, g.At(3, 3))
}

func TestApplySymmetryRoundTrip(t *testing.T) {
	modes := []SymmetryMode{SymmetryHorizontal, SymmetryVertical, SymmetryBoth, SymmetryRotational2, SymmetryRotational4}
	for _, mode := range modes {
		g := NewGrid(10, 10, Wall)
		g.Set(1, 1, Floor)
		g.Set(3, 4, Treasure)
		out := ApplySymmetry(g, mode)
		require.True(t, HasSymmetry(out, mode), "mode %s must hold after ApplySymmetry", mode)
	}
}

// TestGridCountProperty exercises property 6 (clone independence) and the
// tile-code domain property across random grids and random edits.
func TestGridCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 40).Draw(rt, "w")
		h := rapid.IntRange(1, 40).Draw(rt, "h")
		g := NewGrid(w, h, Wall)
		clone := g.Clone()

		x := rapid.IntRange(0, w-1).Draw(rt, "x")
		y := rapid.IntRange(0, h-1).Draw(rt, "y")
		clone.Set(x, y, Floor)

		if g.At(x, y) == Floor {
			rt.Fatalf("mutating clone leaked into source at (%d,%d)", x, y)
		}
		if clone.Width() != w || clone.Height() != h {
			rt.Fatalf("clone dimensions diverged from source")
		}
	})
}
