package modifier

import (
	"testing"

	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/require"
)

func drawnRoom(bounds tile.Rect) (*tile.Grid, shape.RoomShape) {
	g := tile.NewGrid(bounds.Width+4, bounds.Height+4, tile.Wall)
	rect := shape.NewRectangle(bounds)
	for _, p := range rect.Tiles() {
		g.SetPoint(p, tile.Floor)
	}
	return g, rect
}

func TestApplyRespectsProbability(t *testing.T) {
	g, s := drawnRoom(tile.Rect{X: 1, Y: 1, Width: 8, Height: 8})
	before := g.Clone()
	r := rng.NewSeeded(1)
	called := false
	Apply(g, s, 0, r, func(*tile.Grid, shape.RoomShape, float64, *rng.RNG) { called = true })
	require.False(t, called, "probability 0 must never invoke the modifier")
	require.Equal(t, before.Count(tile.Floor), g.Count(tile.Floor))
}

func TestAddPillarsRespectsSpacing(t *testing.T) {
	g, s := drawnRoom(tile.Rect{X: 1, Y: 1, Width: 12, Height: 12})
	r := rng.NewSeeded(3)
	mod := AddPillars(AddPillarsOptions{MinCount: 4, MaxCount: 4, MinSpacing: 3})
	mod(g, s, 1, r)

	var pillars []tile.Point
	for _, p := range shape.GetShapeTiles(s) {
		if g.Get(p) == tile.Wall {
			pillars = append(pillars, p)
		}
	}
	for i := 0; i < len(pillars); i++ {
		for j := i + 1; j < len(pillars); j++ {
			require.GreaterOrEqual(t, pillars[i].Manhattan(pillars[j]), 3)
		}
	}
}

func TestRoundCornersOnlyTouchesShapeTiles(t *testing.T) {
	g, s := drawnRoom(tile.Rect{X: 1, Y: 1, Width: 10, Height: 10})
	before := g.Clone()
	mod := RoundCorners(RoundCornersOptions{Radius: 2})
	mod(g, s, 1, nil)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := tile.Point{X: x, Y: y}
			inShape := false
			for _, t := range shape.GetShapeTiles(s) {
				if t == p {
					inShape = true
					break
				}
			}
			if !inShape {
				require.Equal(t, before.Get(p), g.Get(p), "tile outside the shape must be untouched at %v", p)
			}
		}
	}
}

func TestIrregularEdgesPreservesSomeFloor(t *testing.T) {
	g, s := drawnRoom(tile.Rect{X: 1, Y: 1, Width: 10, Height: 10})
	r := rng.NewSeeded(9)
	mod := IrregularEdges(IrregularEdgesOptions{Probability: 0.5, Variance: 2})
	mod(g, s, 1, r)
	require.Greater(t, g.Count(tile.Floor), 0)
}
