package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// IrregularEdgesOptions configures IrregularEdges.
type IrregularEdgesOptions struct {
	Probability float64 // per-edge-tile erosion chance, default 0.2
	Variance    int      // max outward extension, default 2
}

// IrregularEdges roughens a shape's border: for each edge tile, with
// probability Probability, replaces it with WALL iff at least 2 adjacent
// shape tiles remain (preserving connectivity); additionally, with
// probability Probability/2, extends a floor outward by 1..Variance tiles.
func IrregularEdges(opts IrregularEdgesOptions) Modifier {
	if opts.Probability <= 0 {
		opts.Probability = 0.2
	}
	if opts.Variance <= 0 {
		opts.Variance = 2
	}
	return func(g *tile.Grid, s shape.RoomShape, _ float64, r *rng.RNG) {
		tiles := tileSet(s)
		edges := edgeTiles(g, tiles)
		for _, p := range edges {
			if r.Chance(opts.Probability) {
				remaining := 0
				for _, d := range tile.Cardinals {
					if tiles[p.Add(d)] && g.Get(p.Add(d)) != tile.Wall {
						remaining++
					}
				}
				if remaining >= 2 {
					g.SetPoint(p, tile.Wall)
				}
			}
			if r.Chance(opts.Probability / 2) {
				dir := outwardDirection(g, p, tiles)
				depth := r.IntRange(1, opts.Variance)
				for d := 1; d <= depth; d++ {
					np := tile.Point{X: p.X + dir.DX*d, Y: p.Y + dir.DY*d}
					if !g.InBounds(np.X, np.Y) || g.Get(np) != tile.Wall {
						break
					}
					g.SetPoint(np, tile.Floor)
				}
			}
		}
	}
}
