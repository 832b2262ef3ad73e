package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// AddAlcovesOptions configures AddAlcoves.
type AddAlcovesOptions struct {
	Count    int // number of alcove attempts, default 2
	MinWidth int // default 1
	MaxWidth int // default 2
	MaxDepth int // default 3
}

// AddAlcoves picks random edge tiles (shape tiles with a wall neighbor) and
// extends a 1-2 tile wide rectangular pocket outward into the wall,
// aborting a pocket that would leave the grid or cross existing floor.
func AddAlcoves(opts AddAlcovesOptions) Modifier {
	if opts.Count <= 0 {
		opts.Count = 2
	}
	if opts.MinWidth <= 0 {
		opts.MinWidth = 1
	}
	if opts.MaxWidth < opts.MinWidth {
		opts.MaxWidth = 2
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 3
	}
	return func(g *tile.Grid, s shape.RoomShape, _ float64, r *rng.RNG) {
		tiles := tileSet(s)
		edges := edgeTiles(g, tiles)
		if len(edges) == 0 {
			return
		}
		rng.Shuffle(r, edges)
		attempts := opts.Count
		if attempts > len(edges) {
			attempts = len(edges)
		}
		for i := 0; i < attempts; i++ {
			anchor := edges[i]
			dir := outwardDirection(g, anchor, tiles)
			width := r.IntRange(opts.MinWidth, opts.MaxWidth)
			depth := r.IntRange(1, opts.MaxDepth)
			carveAlcove(g, anchor, dir, width, depth)
		}
	}
}

func edgeTiles(g *tile.Grid, tiles map[tile.Point]bool) []tile.Point {
	var edges []tile.Point
	for p := range tiles {
		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if g.InBounds(np.X, np.Y) && g.Get(np) == tile.Wall {
				edges = append(edges, p)
				break
			}
		}
	}
	return edges
}

func outwardDirection(g *tile.Grid, p tile.Point, tiles map[tile.Point]bool) tile.Direction {
	for _, d := range tile.Cardinals {
		np := p.Add(d)
		if g.InBounds(np.X, np.Y) && g.Get(np) == tile.Wall {
			return d
		}
	}
	return tile.North
}

func carveAlcove(g *tile.Grid, anchor tile.Point, dir tile.Direction, width, depth int) {
	// perpendicular axis for width spread
	perp := tile.Direction{DX: dir.DY, DY: dir.DX}
	var positions []tile.Point
	for d := 1; d <= depth; d++ {
		for w := 0; w < width; w++ {
			off := w - width/2
			p := tile.Point{
				X: anchor.X + dir.DX*d + perp.DX*off,
				Y: anchor.Y + dir.DY*d + perp.DY*off,
			}
			if !g.InBounds(p.X, p.Y) {
				return // would leave the grid: abort the whole pocket
			}
			if g.Get(p) != tile.Wall {
				return // crosses existing floor: abort
			}
			positions = append(positions, p)
		}
	}
	for _, p := range positions {
		g.SetPoint(p, tile.Floor)
	}
}
