package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// AddPillarsOptions configures AddPillars.
type AddPillarsOptions struct {
	MinCount     int // default 2
	MaxCount     int // default 5
	MinSpacing   int // Manhattan spacing, default 2
}

// AddPillars replaces up to a count drawn from [MinCount, MaxCount] of the
// interior tiles (all 8 neighbors are shape
// tiles) with WALL, enforcing minimum Manhattan spacing between pillars.
func AddPillars(opts AddPillarsOptions) Modifier {
	if opts.MinCount <= 0 {
		opts.MinCount = 2
	}
	if opts.MaxCount < opts.MinCount {
		opts.MaxCount = 5
	}
	if opts.MinSpacing <= 0 {
		opts.MinSpacing = 2
	}
	return func(g *tile.Grid, s shape.RoomShape, _ float64, r *rng.RNG) {
		tiles := tileSet(s)
		interior := interiorTiles(tiles)
		if len(interior) == 0 {
			return
		}
		rng.Shuffle(r, interior)
		count := r.IntRange(opts.MinCount, opts.MaxCount)
		var placed []tile.Point
		for _, p := range interior {
			if len(placed) >= count {
				break
			}
			tooClose := false
			for _, q := range placed {
				if p.Manhattan(q) < opts.MinSpacing {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			placed = append(placed, p)
			g.SetPoint(p, tile.Wall)
		}
	}
}

func interiorTiles(tiles map[tile.Point]bool) []tile.Point {
	var interior []tile.Point
	for p := range tiles {
		all := true
		for dy := -1; dy <= 1 && all; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !tiles[tile.Point{X: p.X + dx, Y: p.Y + dy}] {
					all = false
					break
				}
			}
		}
		if all {
			interior = append(interior, p)
		}
	}
	return interior
}
