package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// DrunkardVariant selects among the three walker strategies of spec §4.4.
type DrunkardVariant string

const (
	DrunkardSimple   DrunkardVariant = "simple"
	DrunkardWeighted DrunkardVariant = "weighted"
	DrunkardMultiple DrunkardVariant = "multiple"
)

// DrunkardOptions configures GenerateDrunkard.
type DrunkardOptions struct {
	Variant        DrunkardVariant // default DrunkardSimple
	FillPercentage float64         // default 0.4, stop condition
	MaxSteps       int             // safety cap, default 50*size*size
	Walkers        int             // for DrunkardMultiple, default 4
	ForwardBias    float64         // for DrunkardWeighted: probability of keeping previous direction, default 0.6
	Seed           *uint64
}

func defaultDrunkardOptions(opts DrunkardOptions, size int) DrunkardOptions {
	if opts.Variant == "" {
		opts.Variant = DrunkardSimple
	}
	if opts.FillPercentage <= 0 {
		opts.FillPercentage = 0.4
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 50 * size * size
	}
	if opts.Walkers <= 0 {
		opts.Walkers = 4
	}
	if opts.ForwardBias <= 0 {
		opts.ForwardBias = 0.6
	}
	return opts
}

// GenerateDrunkard carves a cave by one or more random walkers ("drunkard's
// walk"): each step a walker carves its current tile floor and moves to a
// cardinal neighbor, biased (DrunkardWeighted) toward continuing its previous
// direction, until FillPercentage of the interior is floor or MaxSteps is hit.
func GenerateDrunkard(size int, opts DrunkardOptions) (*tile.Grid, error) {
	if err := ValidateSize("drunkard", size); err != nil {
		return nil, err
	}
	opts = defaultDrunkardOptions(opts, size)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, tile.Wall)
		target := int(opts.FillPercentage * float64((size-2)*(size-2)))
		center := tile.Point{X: size / 2, Y: size / 2}

		walkerCount := 1
		if opts.Variant == DrunkardMultiple {
			walkerCount = opts.Walkers
		}
		walkers := make([]tile.Point, walkerCount)
		lastDir := make([]tile.Direction, walkerCount)
		for i := range walkers {
			walkers[i] = center
			lastDir[i] = tile.Cardinals[r.Intn(4)]
		}

		for step := 0; step < opts.MaxSteps && g.Count(tile.Floor) < target; step++ {
			for i := range walkers {
				g.SetPoint(walkers[i], tile.Floor)
				d := nextDrunkardDirection(opts.Variant, opts.ForwardBias, lastDir[i], r)
				np := walkers[i].Add(d)
				if g.InBounds(np.X, np.Y) {
					walkers[i] = np
					lastDir[i] = d
				}
			}
		}
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

func nextDrunkardDirection(variant DrunkardVariant, forwardBias float64, last tile.Direction, r *rng.RNG) tile.Direction {
	if variant == DrunkardWeighted && r.Chance(forwardBias) {
		return last
	}
	return tile.Cardinals[r.Intn(4)]
}
