package generator

import (
	"errors"

	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// ErrWFCContradiction is returned when propagation leaves a cell with no
// possible tile, per spec §7.
var ErrWFCContradiction = errors.New("wfc: contradiction - no valid tile for cell")

// WFCAdjacencyRule declares that `to` may appear adjacent to `from` in
// direction dir.
type WFCAdjacencyRule struct {
	From tile.Tile
	To   tile.Tile
	Dir  tile.Direction
}

// WFCOptions configures GenerateWFC. Tiles defaults to {Wall, Floor} and
// Weights to 1 per tile; a grid with no rules behaves as an unconstrained
// random fill.
type WFCOptions struct {
	Tiles      []tile.Tile
	Weights    map[tile.Tile]float64
	Rules      []WFCAdjacencyRule
	MaxRetries int // restart attempts on contradiction, default 5
	Seed       *uint64
}

func defaultWFCOptions(opts WFCOptions) WFCOptions {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if len(opts.Tiles) == 0 {
		opts.Tiles = []tile.Tile{tile.Wall, tile.Floor}
	}
	if opts.Weights == nil {
		opts.Weights = map[tile.Tile]float64{}
		for _, t := range opts.Tiles {
			opts.Weights[t] = 1
		}
	}
	return opts
}

type wfcResult struct {
	grid *tile.Grid
	err  error
}

type wfcCell struct {
	possible  map[tile.Tile]bool
	collapsed bool
	value     tile.Tile
}

func (c *wfcCell) entropy() int {
	n := 0
	for _, ok := range c.possible {
		if ok {
			n++
		}
	}
	return n
}

// GenerateWFC solves a Wave Function Collapse grid: each cell starts with
// every tile in Tiles possible, and the solver repeatedly collapses the
// lowest-entropy cell (weighted random among its remaining possibilities)
// and propagates the adjacency Rules outward, failing with
// ErrWFCContradiction if a cell is left with zero possibilities in each of
// MaxRetries attempts, every attempt starting from scratch.
func GenerateWFC(size int, opts WFCOptions) (*tile.Grid, error) {
	if err := ValidateSize("wfc", size); err != nil {
		return nil, err
	}
	opts = defaultWFCOptions(opts)

	byFrom := map[tile.Tile][]WFCAdjacencyRule{}
	for _, rule := range opts.Rules {
		byFrom[rule.From] = append(byFrom[rule.From], rule)
	}

	var lastErr error
	for attempt := 0; attempt < opts.MaxRetries; attempt++ {
		seed := opts.Seed
		if seed != nil {
			derived := *seed + uint64(attempt)
			seed = &derived
		}
		res := rng.WithSeed(seed, func(r *rng.RNG) wfcResult {
			g, err := solveWFC(size, opts, byFrom, r)
			return wfcResult{grid: g, err: err}
		})
		if res.err == nil {
			return res.grid, nil
		}
		lastErr = res.err
	}
	return nil, lastErr
}

func solveWFC(size int, opts WFCOptions, byFrom map[tile.Tile][]WFCAdjacencyRule, r *rng.RNG) (*tile.Grid, error) {
	cells := make([][]*wfcCell, size)
	for y := range cells {
		cells[y] = make([]*wfcCell, size)
		for x := range cells[y] {
			possible := make(map[tile.Tile]bool, len(opts.Tiles))
			for _, t := range opts.Tiles {
				possible[t] = true
			}
			cells[y][x] = &wfcCell{possible: possible}
		}
	}

	for {
		cx, cy, found := lowestEntropyCell(cells, size)
		if !found {
			break
		}
		cell := cells[cy][cx]
		choice, err := collapseCell(cell, opts.Weights, r)
		if err != nil {
			return nil, err
		}
		cell.collapsed = true
		cell.value = choice
		cell.possible = map[tile.Tile]bool{choice: true}

		if err := propagateWFC(cells, size, cx, cy, byFrom); err != nil {
			return nil, err
		}
	}

	g := tile.NewGrid(size, size, tile.Wall)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, cells[y][x].value)
		}
	}
	return g, nil
}

func lowestEntropyCell(cells [][]*wfcCell, size int) (int, int, bool) {
	best := -1
	bestX, bestY := -1, -1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := cells[y][x]
			if c.collapsed {
				continue
			}
			e := c.entropy()
			if best == -1 || e < best {
				best = e
				bestX, bestY = x, y
			}
		}
	}
	if bestX == -1 {
		return 0, 0, false
	}
	return bestX, bestY, true
}

func collapseCell(cell *wfcCell, weights map[tile.Tile]float64, r *rng.RNG) (tile.Tile, error) {
	var candidates []tile.Tile
	var w []float64
	for t, ok := range cell.possible {
		if ok {
			candidates = append(candidates, t)
			w = append(w, weights[t])
		}
	}
	if len(candidates) == 0 {
		return 0, ErrWFCContradiction
	}
	return rng.Weighted(r, candidates, w), nil
}

func propagateWFC(cells [][]*wfcCell, size, startX, startY int, byFrom map[tile.Tile][]WFCAdjacencyRule) error {
	stack := []tile.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cell := cells[p.Y][p.X]

		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if np.X < 0 || np.X >= size || np.Y < 0 || np.Y >= size {
				continue
			}
			neighbor := cells[np.Y][np.X]
			if neighbor.collapsed {
				continue
			}
			changed := constrainNeighbor(cell, neighbor, d, byFrom)
			if changed {
				if neighbor.entropy() == 0 {
					return ErrWFCContradiction
				}
				stack = append(stack, np)
			}
		}
	}
	return nil
}

// constrainNeighbor removes possibilities from neighbor that have no
// supporting rule from any of cell's remaining possibilities in direction d.
// If cell has no rules defined at all (unconstrained palette), no pruning
// occurs.
func constrainNeighbor(cell, neighbor *wfcCell, d tile.Direction, byFrom map[tile.Tile][]WFCAdjacencyRule) bool {
	if len(byFrom) == 0 {
		return false
	}
	allowed := map[tile.Tile]bool{}
	any := false
	for from, ok := range cell.possible {
		if !ok {
			continue
		}
		for _, rule := range byFrom[from] {
			if rule.Dir == d {
				allowed[rule.To] = true
				any = true
			}
		}
	}
	if !any {
		return false
	}
	changed := false
	for t, ok := range neighbor.possible {
		if ok && !allowed[t] {
			neighbor.possible[t] = false
			changed = true
		}
	}
	return changed
}
