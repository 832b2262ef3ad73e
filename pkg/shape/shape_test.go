package shape

import (
	"testing"

	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRectangleTiles(t *testing.T) {
	r := NewRectangle(tile.Rect{X: 2, Y: 3, Width: 4, Height: 2})
	tiles := r.Tiles()
	require.Len(t, tiles, 8)
	require.Equal(t, tile.Rect{X: 2, Y: 3, Width: 4, Height: 2}, r.BBox())
}

func TestCompositeVariantsStayWithinBounds(t *testing.T) {
	bounds := tile.Rect{X: 0, Y: 0, Width: 12, Height: 12}
	for _, v := range []CompositeVariant{CompositeL, CompositeT, CompositeCross, CompositeU, CompositeZ, CompositeRandom} {
		r := rng.NewSeeded(1)
		c := NewComposite(bounds, v, r)
		for _, p := range c.Tiles() {
			require.True(t, bounds.Contains(p), "variant %s produced tile %v out of bounds", v, p)
		}
	}
}

func TestTemplateTilesWithinTarget(t *testing.T) {
	target := tile.Rect{X: 0, Y: 0, Width: 9, Height: 9}
	base := NewTemplate("diamond", target, nil)
	require.NotEmpty(t, base.Tiles())
	for _, p := range base.Tiles() {
		require.True(t, target.Contains(p))
	}
}

func TestCellularFallsBackWhenEmpty(t *testing.T) {
	bounds := tile.Rect{X: 0, Y: 0, Width: 6, Height: 6}
	r := rng.NewSeeded(5)
	// Density 0 guarantees no floor tiles before smoothing; the automaton
	// never births anything, so the fallback shrunk rectangle must apply.
	opts := CellularOptions{Density: 0, Iterations: 2, BirthLimit: 8, DeathLimit: 8}
	c := NewCellular(bounds, opts, r)
	require.NotEmpty(t, c.Tiles())
}

func TestPolygonVerticesWithinBBox(t *testing.T) {
	for _, v := range []PolygonVariant{PolygonHex, PolygonOct, PolygonCircle, PolygonEllipse, PolygonDiamond} {
		bounds := tile.Rect{X: 0, Y: 0, Width: 16, Height: 16}
		p := NewPolygon(bounds, v)
		require.NotEmpty(t, p.Tiles())
		for _, tp := range p.Tiles() {
			require.True(t, bounds.Contains(tp))
		}
	}
}

func TestGenerateRoomShapeFallsBackToRectangleWhenTooSmall(t *testing.T) {
	bounds := tile.Rect{X: 0, Y: 0, Width: 3, Height: 3}
	r := rng.NewSeeded(1)
	s := GenerateRoomShape(bounds, Options{AllowedShapes: []string{"cellular", "polygon:hex"}}, r)
	_, isRect := s.(*Rectangle)
	require.True(t, isRect)
}

func TestShapeTilesAlwaysWithinBBox(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(6, 20).Draw(rt, "w")
		h := rapid.IntRange(6, 20).Draw(rt, "h")
		seed := uint64(rapid.Uint64().Draw(rt, "seed"))
		bounds := tile.Rect{X: 0, Y: 0, Width: w, Height: h}
		r := rng.NewSeeded(seed)
		variant := rapid.SampledFrom([]string{"rectangle", "composite:L", "composite:CROSS", "cellular", "polygon:diamond"}).Draw(rt, "variant")
		s := GenerateRoomShape(bounds, Options{AllowedShapes: []string{variant}}, r)
		bbox := s.BBox()
		for _, p := range s.Tiles() {
			if !bbox.Contains(p) {
				rt.Fatalf("shape %s produced tile %v outside its bbox %v", variant, p, bbox)
			}
		}
		for _, p := range s.Tiles() {
			if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
				rt.Fatalf("shape %s produced out-of-bounds tile %v", variant, p)
			}
		}
	})
}
