package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// NibbleCornersOptions configures NibbleCorners.
type NibbleCornersOptions struct {
	CornerProbability float64 // per-corner chance, default 0.3
	MaxSize           int     // max wedge leg length in tiles, default 3
}

// NibbleCorners removes a triangular wedge whose legs are 1..MaxSize tiles
// long (a leg of n removes up to n*(n+1)/2 tiles) from each of the four bbox
// corners, with independent per-corner probability.
func NibbleCorners(opts NibbleCornersOptions) Modifier {
	if opts.CornerProbability <= 0 {
		opts.CornerProbability = 0.3
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 3
	}
	return func(g *tile.Grid, s shape.RoomShape, _ float64, r *rng.RNG) {
		tiles := tileSet(s)
		bbox := s.BBox()
		corners := []tile.Point{
			{X: bbox.X, Y: bbox.Y},
			{X: bbox.X + bbox.Width - 1, Y: bbox.Y},
			{X: bbox.X, Y: bbox.Y + bbox.Height - 1},
			{X: bbox.X + bbox.Width - 1, Y: bbox.Y + bbox.Height - 1},
		}
		signs := [][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
		for i, corner := range corners {
			if !r.Chance(opts.CornerProbability) {
				continue
			}
			size := r.IntRange(1, opts.MaxSize)
			sx, sy := signs[i][0], signs[i][1]
			for d := 0; d < size; d++ {
				for dx := 0; dx <= d; dx++ {
					p := tile.Point{X: corner.X + sx*dx, Y: corner.Y + sy*(d-dx)}
					if tiles[p] {
						g.SetPoint(p, tile.Wall)
					}
				}
			}
		}
	}
}
