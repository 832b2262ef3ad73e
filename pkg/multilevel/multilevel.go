// Package multilevel builds a stack of dungeon levels and threads
// stair-pair connections between consecutive levels, retrying level
// generation a bounded number of times to reach full connectivity.
// Grounded on the teacher's pkg/dungeon orchestration (which drives
// generation + validation retries from a single entry point), generalized
// to a multi-level stack per spec §4.8.
package multilevel

import (
	"fmt"

	"github.com/dshills/dunegen/pkg/connectivity"
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// LevelSpec describes one level's generator and name.
type LevelSpec struct {
	Name      string
	Generator func(seed *uint64) (*tile.Grid, error)
}

// StairConnection records a placed stair pair between two adjacent levels.
type StairConnection struct {
	UpperLevel int
	LowerLevel int
	UpperPos   tile.Point
	LowerPos   tile.Point
}

// Options configures GenerateMultiLevel.
type Options struct {
	StairsPerConnection int  // default 2
	MinStairDistance    int  // default 8
	EnsureConnectivity  bool // false unless set: each level is then generated once, unchecked
	MaxRetries          int  // default 5
	Seed                *uint64
}

func defaultOptions(opts Options) Options {
	if opts.StairsPerConnection <= 0 {
		opts.StairsPerConnection = 2
	}
	if opts.MinStairDistance <= 0 {
		opts.MinStairDistance = 8
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	return opts
}

// Result is the output of GenerateMultiLevel.
type Result struct {
	Levels      []*tile.Grid
	Connections []StairConnection
}

// GenerateMultiLevel generates one grid per LevelSpec (retrying up to
// MaxRetries times for a fully-connected level when EnsureConnectivity is
// set), then threads StairsPerConnection stair pairs between every
// consecutive pair of levels.
func GenerateMultiLevel(specs []LevelSpec, opts Options) (*Result, error) {
	opts = defaultOptions(opts)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *result2 {
		levels := make([]*tile.Grid, len(specs))
		for i, spec := range specs {
			g, err := generateConnectedLevel(spec, opts, r)
			if err != nil {
				return &result2{err: err}
			}
			levels[i] = g
		}

		var connections []StairConnection
		for i := 0; i+1 < len(levels); i++ {
			placed := threadStairs(levels[i], levels[i+1], i, i+1, opts, r)
			connections = append(connections, placed...)
		}
		return &result2{res: &Result{Levels: levels, Connections: connections}}
	}).unwrap()
}

type result2 struct {
	res *Result
	err error
}

func (r *result2) unwrap() (*Result, error) { return r.res, r.err }

func generateConnectedLevel(spec LevelSpec, opts Options, r *rng.RNG) (*tile.Grid, error) {
	var last *tile.Grid
	attempts := 1
	if opts.EnsureConnectivity {
		attempts = opts.MaxRetries
	}
	for attempt := 0; attempt < attempts; attempt++ {
		seed := r.Seed() + uint64(attempt)
		g, err := spec.Generator(&seed)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", spec.Name, err)
		}
		last = g
		if !opts.EnsureConnectivity || connectivity.IsFullyConnected(g) {
			return g, nil
		}
	}
	return last, nil
}

// threadStairs places StairsPerConnection candidate stair pairs between
// upper level `upperIdx` and lower level `lowerIdx`.
func threadStairs(upper, lower *tile.Grid, upperIdx, lowerIdx int, opts Options, r *rng.RNG) []StairConnection {
	upperCandidates := stairCandidates(upper)
	lowerCandidates := stairCandidates(lower)

	var placedUpper, placedLower []tile.Point
	var connections []StairConnection

	for i := 0; i < opts.StairsPerConnection; i++ {
		upperAvailable := filterByDistance(upperCandidates, placedUpper, opts.MinStairDistance)
		if len(upperAvailable) == 0 {
			break
		}
		up := rng.Pick(r, upperAvailable)

		lowerAvailable := filterByDistance(lowerCandidates, placedLower, opts.MinStairDistance)
		if len(lowerAvailable) == 0 {
			break
		}
		low := nearestOrRandom(lowerAvailable, up, r)

		upper.SetPoint(up, tile.StairsDown)
		lower.SetPoint(low, tile.StairsUp)
		placedUpper = append(placedUpper, up)
		placedLower = append(placedLower, low)
		connections = append(connections, StairConnection{
			UpperLevel: upperIdx, LowerLevel: lowerIdx,
			UpperPos: up, LowerPos: low,
		})
	}
	return connections
}

func stairCandidates(g *tile.Grid) []tile.Point {
	var out []tile.Point
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) != tile.Floor {
				continue
			}
			if g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Floor }) == 4 {
				out = append(out, tile.Point{X: x, Y: y})
			}
		}
	}
	return out
}

func filterByDistance(candidates, placed []tile.Point, minDist int) []tile.Point {
	var out []tile.Point
	for _, c := range candidates {
		ok := true
		for _, p := range placed {
			if c.Manhattan(p) < minDist {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func nearestOrRandom(candidates []tile.Point, target tile.Point, r *rng.RNG) tile.Point {
	best := candidates[0]
	bestDist := best.Manhattan(target)
	for _, c := range candidates[1:] {
		if d := c.Manhattan(target); d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist < 15 {
		return best
	}
	return rng.Pick(r, candidates)
}
