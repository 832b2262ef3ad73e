package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// VoronoiOptions configures GenerateVoronoi (spec §4.4): scatter
// SiteCount seed points, assign every cell to its nearest site (its Voronoi
// region), carve a room around each site, and connect sites whose regions
// are adjacent. Grounded on the region-density-zone concept of
// Afromullet-TinkerRogue's worldmap/gen_hybrid.go.
type VoronoiOptions struct {
	SiteCount   int // default max(2, size/8)
	RelaxIters  int // Lloyd relaxation iterations, default 2
	RoomSizeMin int // default 3
	RoomSizeMax int // default 6
	Seed        *uint64
}

func defaultVoronoiOptions(opts VoronoiOptions, size int) VoronoiOptions {
	if opts.SiteCount <= 0 {
		opts.SiteCount = maxInt(2, size/8)
	}
	if opts.RelaxIters <= 0 {
		opts.RelaxIters = 2
	}
	if opts.RoomSizeMin <= 0 {
		opts.RoomSizeMin = 3
	}
	if opts.RoomSizeMax <= 0 {
		opts.RoomSizeMax = 6
	}
	return opts
}

// GenerateVoronoi builds a dungeon from a Voronoi diagram: one room per
// site, corridors connecting sites whose regions share a border.
func GenerateVoronoi(size int, opts VoronoiOptions) (*tile.Grid, error) {
	if err := ValidateSize("voronoi", size); err != nil {
		return nil, err
	}
	opts = defaultVoronoiOptions(opts, size)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		sites := scatterVoronoiSites(size, opts.SiteCount, r)
		for i := 0; i < opts.RelaxIters; i++ {
			sites = relaxVoronoiSites(sites, size)
		}

		owner := assignVoronoiRegions(sites, size)
		adjacency := voronoiAdjacency(owner, size, len(sites))

		g := tile.NewGrid(size, size, tile.Wall)
		for _, s := range sites {
			w := r.IntRange(opts.RoomSizeMin, opts.RoomSizeMax)
			h := r.IntRange(opts.RoomSizeMin, opts.RoomSizeMax)
			carveVoronoiRoom(g, s, w, h)
		}

		for i, neighbors := range adjacency {
			for j := range neighbors {
				if j <= i || !neighbors[j] {
					continue
				}
				carveLCorridor(g, sites[i], sites[j], r)
			}
		}
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

func scatterVoronoiSites(size, count int, r *rng.RNG) []tile.Point {
	sites := make([]tile.Point, count)
	for i := range sites {
		sites[i] = tile.Point{X: r.IntRange(2, size-3), Y: r.IntRange(2, size-3)}
	}
	return sites
}

// relaxVoronoiSites performs one Lloyd relaxation step: moves each site to
// the centroid of the cells currently assigned to it.
func relaxVoronoiSites(sites []tile.Point, size int) []tile.Point {
	owner := assignVoronoiRegions(sites, size)
	sumX := make([]int, len(sites))
	sumY := make([]int, len(sites))
	count := make([]int, len(sites))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := owner[y*size+x]
			sumX[idx] += x
			sumY[idx] += y
			count[idx]++
		}
	}

	relaxed := make([]tile.Point, len(sites))
	for i := range sites {
		if count[i] == 0 {
			relaxed[i] = sites[i]
			continue
		}
		relaxed[i] = tile.Point{X: sumX[i] / count[i], Y: sumY[i] / count[i]}
	}
	return relaxed
}

// assignVoronoiRegions returns, for each cell (row-major), the index of its
// nearest site.
func assignVoronoiRegions(sites []tile.Point, size int) []int {
	owner := make([]int, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			best := 0
			bestDist := -1
			p := tile.Point{X: x, Y: y}
			for i, s := range sites {
				d := p.Manhattan(s)
				if bestDist == -1 || d < bestDist {
					bestDist = d
					best = i
				}
			}
			owner[y*size+x] = best
		}
	}
	return owner
}

// voronoiAdjacency reports which site-region pairs share a cell boundary.
func voronoiAdjacency(owner []int, size, n int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := owner[y*size+x]
			if x+1 < size {
				b := owner[y*size+x+1]
				if a != b {
					adj[a][b] = true
					adj[b][a] = true
				}
			}
			if y+1 < size {
				b := owner[(y+1)*size+x]
				if a != b {
					adj[a][b] = true
					adj[b][a] = true
				}
			}
		}
	}
	return adj
}

func carveVoronoiRoom(g *tile.Grid, center tile.Point, w, h int) {
	x0 := maxInt(1, center.X-w/2)
	y0 := maxInt(1, center.Y-h/2)
	x1 := minInt(g.Width()-2, x0+w)
	y1 := minInt(g.Height()-2, y0+h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
}
