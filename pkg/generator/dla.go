package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// DLAOptions configures GenerateDLA (spec §4.4).
type DLAOptions struct {
	Seeds            int     // default 1
	FillPercentage   float64 // default 0.3
	Stickiness       float64 // default 0.8
	MaxParticleSteps int     // per-particle random-walk cap, default 4*size
	Seed             *uint64
}

func defaultDLAOptions(opts DLAOptions, size int) DLAOptions {
	if opts.Seeds <= 0 {
		opts.Seeds = 1
	}
	if opts.FillPercentage <= 0 {
		opts.FillPercentage = 0.3
	}
	if opts.Stickiness <= 0 {
		opts.Stickiness = 0.8
	}
	if opts.MaxParticleSteps <= 0 {
		opts.MaxParticleSteps = 4 * size
	}
	return opts
}

// GenerateDLA grows a cave by diffusion-limited aggregation: particles
// random-walk from a random interior cell until adjacent to existing floor,
// then stick with probability Stickiness. No particle is spawned on the edge.
func GenerateDLA(size int, opts DLAOptions) (*tile.Grid, error) {
	if err := ValidateSize("dla", size); err != nil {
		return nil, err
	}
	opts = defaultDLAOptions(opts, size)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, tile.Wall)
		center := size / 2
		placeSeeds(g, center, opts.Seeds)

		target := int(opts.FillPercentage * float64((size-2)*(size-2)))
		stagnation := 0
		maxStagnation := target * 20
		for g.Count(tile.Floor) < target && stagnation < maxStagnation {
			p := spawnParticle(g, r)
			if walkParticleToStick(g, p, r, opts) {
				stagnation = 0
			} else {
				stagnation++
			}
		}
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

func placeSeeds(g *tile.Grid, center, n int) {
	if n <= 1 {
		g.Set(center, center, tile.Floor)
		return
	}
	spacing := maxInt(1, (g.Width()-2)/n)
	for i := 0; i < n; i++ {
		x := 1 + (i*spacing)%(g.Width()-2)
		g.Set(x, center, tile.Floor)
	}
}

func spawnParticle(g *tile.Grid, r *rng.RNG) tile.Point {
	return tile.Point{X: r.IntRange(1, g.Width()-2), Y: r.IntRange(1, g.Height()-2)}
}

func walkParticleToStick(g *tile.Grid, p tile.Point, r *rng.RNG, opts DLAOptions) bool {
	for step := 0; step < opts.MaxParticleSteps; step++ {
		if g.CardinalNeighborCount(p.X, p.Y, func(t tile.Tile) bool { return t == tile.Floor }) > 0 {
			if r.Chance(opts.Stickiness) {
				g.SetPoint(p, tile.Floor)
				return true
			}
		}
		d := tile.Cardinals[r.Intn(4)]
		np := p.Add(d)
		if g.InBounds(np.X, np.Y) {
			p = np
		}
	}
	return false
}
