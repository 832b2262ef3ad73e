package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// CaveOptions configures GenerateCave (spec §4.4), grounded on
// denialofself-Gearworld's cellular_automata_dungeon.go neighbor-count
// smoothing pass.
type CaveOptions struct {
	InitialFillProbability float64 // default 0.5
	Iterations             int     // default 3
	Seed                   *uint64
}

func defaultCaveOptions(opts CaveOptions) CaveOptions {
	if opts.InitialFillProbability <= 0 {
		opts.InitialFillProbability = 0.5
	}
	if opts.Iterations <= 0 {
		opts.Iterations = 3
	}
	return opts
}

// GenerateCave builds an organic cave: a random initial fill smoothed by
// Moore-neighborhood majority rule, with isolated-chamber seeding when a
// 5x5 neighborhood is completely empty.
func GenerateCave(size int, opts CaveOptions) (*tile.Grid, error) {
	if err := ValidateSize("cave", size); err != nil {
		return nil, err
	}
	opts = defaultCaveOptions(opts)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, tile.Wall)
		for y := 1; y < size-1; y++ {
			for x := 1; x < size-1; x++ {
				if r.Chance(opts.InitialFillProbability) {
					g.Set(x, y, tile.Floor)
				}
			}
		}

		for i := 0; i < opts.Iterations; i++ {
			g = stepCave(g)
		}
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

func stepCave(g *tile.Grid) *tile.Grid {
	next := g.Clone()
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			floorNeighbors := g.MooreNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Floor }, false)
			if g.At(x, y) == tile.Floor {
				floorNeighbors++ // sum_in_radius(1) includes self
			}
			if floorNeighbors >= 5 {
				next.Set(x, y, tile.Floor)
			} else {
				next.Set(x, y, tile.Wall)
			}
			if isEmpty5x5(g, x, y) {
				next.Set(x, y, tile.Floor)
			}
		}
	}
	return next
}

func isEmpty5x5(g *tile.Grid, x, y int) bool {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if g.At(nx, ny) == tile.Floor {
				return false
			}
		}
	}
	return true
}
