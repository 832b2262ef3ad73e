package generator

import (
	"math"

	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// PoissonOptions configures GeneratePoisson (spec §4.4): rooms are placed
// via Poisson-disk sampling (Bridson's algorithm) so every room center is at
// least MinDistance from every other, giving naturally even spacing without
// the grid bias of a plain scatter.
type PoissonOptions struct {
	MinDistance int // minimum spacing between room centers, default 6
	MaxAttempts int // candidate samples tried per active point, default 30
	RoomSizeMin int // default 3
	RoomSizeMax int // default 5
	Seed        *uint64
}

func defaultPoissonOptions(opts PoissonOptions) PoissonOptions {
	if opts.MinDistance <= 0 {
		opts.MinDistance = 6
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 30
	}
	if opts.RoomSizeMin <= 0 {
		opts.RoomSizeMin = 3
	}
	if opts.RoomSizeMax <= 0 {
		opts.RoomSizeMax = 5
	}
	return opts
}

// GeneratePoisson builds a dungeon by Poisson-disk-sampling room centers
// across the interior, carving a small room at each, then connecting each
// room to its nearest already-placed neighbor with an L-corridor (a spanning
// tree over Euclidean distance, built greedily in insertion order, that
// approximates a minimum spanning tree).
func GeneratePoisson(size int, opts PoissonOptions) (*tile.Grid, error) {
	if err := ValidateSize("poisson", size); err != nil {
		return nil, err
	}
	opts = defaultPoissonOptions(opts)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		points := poissonDiskSample(size, opts.MinDistance, opts.MaxAttempts, r)

		g := tile.NewGrid(size, size, tile.Wall)
		for _, p := range points {
			w := r.IntRange(opts.RoomSizeMin, opts.RoomSizeMax)
			h := r.IntRange(opts.RoomSizeMin, opts.RoomSizeMax)
			carveVoronoiRoom(g, p, w, h)
		}
		connectNearestNeighbors(g, points, r)
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

// poissonDiskSample implements Bridson's algorithm over the continuous
// [1,size-1) square, returning accepted points as integer tile.Points.
func poissonDiskSample(size, minDistance, maxAttempts int, r *rng.RNG) []tile.Point {
	type fpoint struct{ x, y float64 }
	minDist := float64(minDistance)

	first := fpoint{x: r.Float64Range(1, float64(size-1)), y: r.Float64Range(1, float64(size-1))}
	samples := []fpoint{first}
	active := []fpoint{first}

	for len(active) > 0 {
		idx := r.Intn(len(active))
		base := active[idx]
		placed := false

		for attempt := 0; attempt < maxAttempts; attempt++ {
			angle := r.Float64Range(0, 2*math.Pi)
			dist := r.Float64Range(minDist, 2*minDist)
			cand := fpoint{x: base.x + dist*math.Cos(angle), y: base.y + dist*math.Sin(angle)}
			if cand.x < 1 || cand.x >= float64(size-1) || cand.y < 1 || cand.y >= float64(size-1) {
				continue
			}

			ok := true
			for _, s := range samples {
				dx, dy := cand.x-s.x, cand.y-s.y
				if dx*dx+dy*dy < minDist*minDist {
					ok = false
					break
				}
			}
			if ok {
				samples = append(samples, cand)
				active = append(active, cand)
				placed = true
				break
			}
		}
		if !placed {
			active[idx] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	points := make([]tile.Point, len(samples))
	for i, s := range samples {
		points[i] = tile.Point{X: int(s.x), Y: int(s.y)}
	}
	return points
}

// connectNearestNeighbors links each room to the nearest room (by Euclidean
// distance) that precedes it in the slice, approximating a minimum spanning
// tree without requiring a full MST implementation.
func connectNearestNeighbors(g *tile.Grid, points []tile.Point, r *rng.RNG) {
	dist2 := func(a, b tile.Point) int {
		dx, dy := a.X-b.X, a.Y-b.Y
		return dx*dx + dy*dy
	}
	for i := 1; i < len(points); i++ {
		best := 0
		bestDist := dist2(points[i], points[0])
		for j := 1; j < i; j++ {
			if d := dist2(points[i], points[j]); d < bestDist {
				bestDist = d
				best = j
			}
		}
		carveLCorridor(g, points[i], points[best], r)
	}
}
