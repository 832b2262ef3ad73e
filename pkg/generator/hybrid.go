package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// HybridOptions configures GenerateHybrid: the grid is partitioned into
// Voronoi-like zones (grounded on the density-zone layering of
// Afromullet-TinkerRogue's worldmap/gen_hybrid.go, which blends Perlin,
// domain-warped noise, and Voronoi region density into a single tactical
// map); each zone is independently carved as either a structured room or an
// organic cave pocket, and zones are stitched together with corridors.
type HybridOptions struct {
	ZoneCount    int     // default max(3, size/10)
	CaveFraction float64 // probability a zone is cave-textured rather than a room, default 0.5
	CaveOptions  CaveOptions
	BSPShapeSize int // room half-extent for structured zones, default 4
	Seed         *uint64
}

func defaultHybridOptions(opts HybridOptions, size int) HybridOptions {
	if opts.ZoneCount <= 0 {
		opts.ZoneCount = maxInt(3, size/10)
	}
	if opts.CaveFraction <= 0 {
		opts.CaveFraction = 0.5
	}
	if opts.BSPShapeSize <= 0 {
		opts.BSPShapeSize = 4
	}
	return opts
}

// GenerateHybrid scatters zone centers, carves each zone as either a
// rectangular room or a locally smoothed cave pocket, then connects every
// zone to its nearest predecessor with an L-corridor.
func GenerateHybrid(size int, opts HybridOptions) (*tile.Grid, error) {
	if err := ValidateSize("hybrid", size); err != nil {
		return nil, err
	}
	opts = defaultHybridOptions(opts, size)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		sites := scatterVoronoiSites(size, opts.ZoneCount, r)
		g := tile.NewGrid(size, size, tile.Wall)

		for _, center := range sites {
			if r.Chance(opts.CaveFraction) {
				carveHybridCavePocket(g, center, opts.BSPShapeSize, r)
			} else {
				w := r.IntRange(opts.BSPShapeSize, opts.BSPShapeSize*2)
				h := r.IntRange(opts.BSPShapeSize, opts.BSPShapeSize*2)
				carveVoronoiRoom(g, center, w, h)
			}
		}
		connectNearestNeighbors(g, sites, r)
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

// carveHybridCavePocket seeds a small random-fill blob around center and
// smooths it with one cellular-automata pass, producing an organic pocket
// local to the zone rather than a full-grid cave.
func carveHybridCavePocket(g *tile.Grid, center tile.Point, radius int, r *rng.RNG) {
	x0, y0 := maxInt(1, center.X-radius), maxInt(1, center.Y-radius)
	x1, y1 := minInt(g.Width()-2, center.X+radius), minInt(g.Height()-2, center.Y+radius)

	local := tile.NewGrid(x1-x0+1, y1-y0+1, tile.Wall)
	for y := 0; y < local.Height(); y++ {
		for x := 0; x < local.Width(); x++ {
			if r.Chance(0.55) {
				local.Set(x, y, tile.Floor)
			}
		}
	}
	local = stepCave(local)

	for y := 0; y < local.Height(); y++ {
		for x := 0; x < local.Width(); x++ {
			if local.At(x, y) == tile.Floor {
				g.Set(x0+x, y0+y, tile.Floor)
			}
		}
	}
	g.SetPoint(center, tile.Floor)
}
