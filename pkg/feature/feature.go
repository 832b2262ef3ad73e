// Package feature places gameplay features (stairs, treasure, traps, water
// pools, pillars) onto a finished grid. Grounded on the teacher's
// pkg/content package, which likewise runs a fixed sequence of placement
// passes over a carved grid, generalized from its pixel/graph content model
// to direct tile-grid scanning (spec §4.5).
package feature

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Options configures PlaceFeatures.
type Options struct {
	StairsChance    float64 // default 0.8
	TreasureChance  float64 // default 0.3
	TrapChance      float64 // default 0.2
	WaterChance     float64 // default 0.3
	PillarChance    float64 // default 0.5
	MaxTreasures    int     // default 5
	MaxTraps        int     // default 5
	MaxPillars      int     // default 6
	GuaranteeStairs bool
	Seed            *uint64
}

func defaultOptions(opts Options) Options {
	if opts.StairsChance <= 0 {
		opts.StairsChance = 0.8
	}
	if opts.TreasureChance <= 0 {
		opts.TreasureChance = 0.3
	}
	if opts.TrapChance <= 0 {
		opts.TrapChance = 0.2
	}
	if opts.WaterChance <= 0 {
		opts.WaterChance = 0.3
	}
	if opts.PillarChance <= 0 {
		opts.PillarChance = 0.5
	}
	if opts.MaxTreasures <= 0 {
		opts.MaxTreasures = 5
	}
	if opts.MaxTraps <= 0 {
		opts.MaxTraps = 5
	}
	if opts.MaxPillars <= 0 {
		opts.MaxPillars = 6
	}
	return opts
}

// classify enumerates the four tile classes spec §4.5 places features from.
type classify struct {
	floors    []tile.Point
	interiors []tile.Point
	corners   []tile.Point
	deadEnds  []tile.Point
}

func classifyTiles(g *tile.Grid) classify {
	var c classify
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			p := tile.Point{X: x, Y: y}
			switch g.At(x, y) {
			case tile.Floor:
				c.floors = append(c.floors, p)
				if isInterior(g, x, y) {
					c.interiors = append(c.interiors, p)
				}
				if isCorner(g, x, y) {
					c.corners = append(c.corners, p)
				}
			case tile.Corridor:
				if isDeadEnd(g, x, y) {
					c.deadEnds = append(c.deadEnds, p)
				}
			}
		}
	}
	return c
}

func isFloorLike(t tile.Tile) bool { return t == tile.Floor || t == tile.Corridor || t == tile.Door }

func isInterior(g *tile.Grid, x, y int) bool {
	return g.CardinalNeighborCount(x, y, isFloorLike) == 4
}

func isCorner(g *tile.Grid, x, y int) bool {
	wallNE := g.At(x+1, y) == tile.Wall && g.At(x, y-1) == tile.Wall
	wallNW := g.At(x-1, y) == tile.Wall && g.At(x, y-1) == tile.Wall
	wallSE := g.At(x+1, y) == tile.Wall && g.At(x, y+1) == tile.Wall
	wallSW := g.At(x-1, y) == tile.Wall && g.At(x, y+1) == tile.Wall
	return wallNE || wallNW || wallSE || wallSW
}

func isDeadEnd(g *tile.Grid, x, y int) bool {
	return g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Wall }) == 3
}

// PlaceFeatures runs the fixed stairs -> treasure -> traps -> water ->
// pillars placement sequence in place on g.
func PlaceFeatures(g *tile.Grid, opts Options) {
	opts = defaultOptions(opts)
	rng.WithSeed(opts.Seed, func(r *rng.RNG) struct{} {
		c := classifyTiles(g)
		rng.Shuffle(r, c.floors)
		rng.Shuffle(r, c.interiors)
		rng.Shuffle(r, c.corners)
		rng.Shuffle(r, c.deadEnds)

		placeStairs(g, c, opts, r)
		placeTreasures(g, c, opts, r)
		placeTraps(g, c, opts, r)
		placeWater(g, c, opts, r)
		placePillars(g, c, opts, r)
		return struct{}{}
	})
}

func placeStairs(g *tile.Grid, c classify, opts Options, r *rng.RNG) {
	order := [][]tile.Point{c.corners, c.deadEnds, c.floors}
	var up *tile.Point
	for _, group := range order {
		for _, p := range group {
			if up != nil {
				break
			}
			if g.Get(p) != tile.Floor && g.Get(p) != tile.Corridor {
				continue
			}
			if opts.GuaranteeStairs || r.Chance(opts.StairsChance) {
				pp := p
				up = &pp
				g.SetPoint(pp, tile.StairsUp)
			}
		}
	}
	if up == nil {
		return
	}
	for _, group := range order {
		for _, p := range group {
			if g.Get(p) != tile.Floor && g.Get(p) != tile.Corridor {
				continue
			}
			if p.Manhattan(*up) <= 1 {
				continue
			}
			if opts.GuaranteeStairs || r.Chance(opts.StairsChance) {
				g.SetPoint(p, tile.StairsDown)
				return
			}
		}
	}
}

func placeTreasures(g *tile.Grid, c classify, opts Options, r *rng.RNG) {
	order := [][]tile.Point{c.deadEnds, c.corners, c.interiors}
	placed := 0
	for _, group := range order {
		for _, p := range group {
			if placed >= opts.MaxTreasures {
				return
			}
			if g.Get(p) != tile.Floor && g.Get(p) != tile.Corridor {
				continue
			}
			if !r.Chance(opts.TreasureChance) {
				continue
			}
			t := tile.Treasure
			if r.Bool() {
				t = tile.Chest
			}
			g.SetPoint(p, t)
			placed++
		}
	}
}

func placeTraps(g *tile.Grid, c classify, opts Options, r *rng.RNG) {
	placed := 0
	for _, p := range c.floors {
		if placed >= opts.MaxTraps {
			return
		}
		if g.Get(p) != tile.Floor {
			continue
		}
		if !r.Chance(opts.TrapChance) {
			continue
		}
		t := tile.Trap
		if !r.Chance(0.6) {
			t = tile.TrapPit
		}
		g.SetPoint(p, t)
		placed++
	}
}

func placeWater(g *tile.Grid, c classify, opts Options, r *rng.RNG) {
	if !r.Chance(opts.WaterChance) || len(c.interiors) == 0 {
		return
	}
	seed := rng.Pick(r, c.interiors)
	if g.Get(seed) != tile.Floor {
		return
	}
	t := waterVariant(r)
	g.SetPoint(seed, t)

	frontier := []tile.Point{seed}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if !g.InBounds(np.X, np.Y) || g.Get(np) != tile.Floor {
				continue
			}
			if r.Chance(0.5) {
				g.SetPoint(np, t)
				frontier = append(frontier, np)
			}
		}
	}
}

func waterVariant(r *rng.RNG) tile.Tile {
	switch {
	case r.Chance(0.15):
		return tile.Lava
	case r.Chance(0.30):
		return tile.DeepWater
	default:
		return tile.Water
	}
}

func placePillars(g *tile.Grid, c classify, opts Options, r *rng.RNG) {
	var placed []tile.Point
	for _, p := range c.interiors {
		if len(placed) >= opts.MaxPillars {
			return
		}
		if g.Get(p) != tile.Floor {
			continue
		}
		tooClose := false
		for _, q := range placed {
			if p.Chebyshev(q) < 3 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		if !r.Chance(opts.PillarChance) {
			continue
		}
		g.SetPoint(p, tile.FallenColumn)
		placed = append(placed, p)
	}
}
