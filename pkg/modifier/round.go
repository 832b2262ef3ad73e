package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// RoundCornersOptions configures RoundCorners.
type RoundCornersOptions struct {
	Radius int // default 2
}

// RoundCorners removes, for each bbox corner, the tiles whose distance from
// the inner rounded curve of the given radius exceeds it.
func RoundCorners(opts RoundCornersOptions) Modifier {
	if opts.Radius <= 0 {
		opts.Radius = 2
	}
	return func(g *tile.Grid, s shape.RoomShape, _ float64, _ *rng.RNG) {
		tiles := tileSet(s)
		bbox := s.BBox()
		r := opts.Radius
		corners := []struct {
			cx, cy int
			sx, sy int
		}{
			{bbox.X + r, bbox.Y + r, -1, -1},
			{bbox.X + bbox.Width - 1 - r, bbox.Y + r, 1, -1},
			{bbox.X + r, bbox.Y + bbox.Height - 1 - r, -1, 1},
			{bbox.X + bbox.Width - 1 - r, bbox.Y + bbox.Height - 1 - r, 1, 1},
		}
		for _, c := range corners {
			for dy := 0; dy <= r; dy++ {
				for dx := 0; dx <= r; dx++ {
					p := tile.Point{X: c.cx + c.sx*dx, Y: c.cy + c.sy*dy}
					if !tiles[p] {
						continue
					}
					if dx*dx+dy*dy > r*r {
						g.SetPoint(p, tile.Wall)
					}
				}
			}
		}
	}
}
