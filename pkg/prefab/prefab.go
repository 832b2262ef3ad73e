// Package prefab implements hand-authored room templates: rotation/mirror
// transforms, connection-point remapping, and scan-and-stamp placement onto
// a grid. Grounded on the teacher's pkg/carving.Stamper (footprint stamping
// at a pose) generalized from its fixed rectangle/oval/cross/L shapes to
// arbitrary tile grids with rotation and mirror support (spec §4.6).
package prefab

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Connection is a point on a prefab's perimeter where a corridor may attach.
type Connection struct {
	Point tile.Point
	Dir   tile.Direction
}

// Prefab is an immutable, hand-authored room template.
type Prefab struct {
	Name        string
	Grid        [][]tile.Tile // row-major, Grid[y][x]
	Connections []Connection
	Categories  []string
	Tags        []string
	Weight      float64
	MinLevel    int
	MaxLevel    int
	Rotations   []int // allowed rotations, subset of {0,90,180,270}; empty means all
}

func (p *Prefab) Width() int  { return len(p.Grid[0]) }
func (p *Prefab) Height() int { return len(p.Grid) }

// Transformed is the result of applying a rotation and/or mirror to a
// Prefab: a fresh grid and remapped connections.
type Transformed struct {
	Grid        [][]tile.Tile
	Connections []Connection
	Width       int
	Height      int
}

// RotateGrid composes rotation 90° CW: new[x][h-1-y] = old[y][x], applied
// rotation/90 times.
func RotateGrid(g [][]tile.Tile, rotation int) [][]tile.Tile {
	steps := (rotation / 90) % 4
	if steps < 0 {
		steps += 4
	}
	for i := 0; i < steps; i++ {
		g = rotateGrid90(g)
	}
	return g
}

func rotateGrid90(g [][]tile.Tile) [][]tile.Tile {
	h := len(g)
	w := len(g[0])
	out := make([][]tile.Tile, w)
	for x := 0; x < w; x++ {
		out[x] = make([]tile.Tile, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[x][h-1-y] = g[y][x]
		}
	}
	return out
}

// MirrorGrid reverses every row (horizontal mirror).
func MirrorGrid(g [][]tile.Tile) [][]tile.Tile {
	h := len(g)
	w := len(g[0])
	out := make([][]tile.Tile, h)
	for y := 0; y < h; y++ {
		out[y] = make([]tile.Tile, w)
		for x := 0; x < w; x++ {
			out[y][x] = g[y][w-1-x]
		}
	}
	return out
}

// rotateDirectionCW rotates a cardinal direction through N->E->S->W->N,
// `steps` times.
func rotateDirectionCW(d tile.Direction, steps int) tile.Direction {
	order := []tile.Direction{tile.North, tile.East, tile.South, tile.West}
	idx := 0
	for i, c := range order {
		if c == d {
			idx = i
			break
		}
	}
	return order[(idx+steps)%4]
}

func mirrorDirection(d tile.Direction) tile.Direction {
	switch d {
	case tile.East:
		return tile.West
	case tile.West:
		return tile.East
	default:
		return d
	}
}

// TransformPrefab applies rotation first (0/90/180/270, swapping width and
// height on 90/270), then mirror, remapping every connection's point and
// direction through the same transform.
func TransformPrefab(p *Prefab, rotation int, mirror bool) Transformed {
	g := RotateGrid(p.Grid, rotation)
	steps := (rotation / 90) % 4
	if steps < 0 {
		steps += 4
	}

	h0, w0 := p.Height(), p.Width()
	conns := make([]Connection, len(p.Connections))
	for i, c := range p.Connections {
		conns[i] = Connection{Point: rotatePointCW(c.Point, w0, h0, steps), Dir: rotateDirectionCW(c.Dir, steps)}
	}

	if mirror {
		g = MirrorGrid(g)
		w := len(g[0])
		for i, c := range conns {
			conns[i] = Connection{Point: tile.Point{X: w - 1 - c.Point.X, Y: c.Point.Y}, Dir: mirrorDirection(c.Dir)}
		}
	}

	return Transformed{Grid: g, Connections: conns, Width: len(g[0]), Height: len(g)}
}

// rotatePointCW maps (x,y) in a w x h grid through `steps` 90° CW rotations.
func rotatePointCW(p tile.Point, w, h, steps int) tile.Point {
	x, y := p.X, p.Y
	for i := 0; i < steps; i++ {
		x, y = h-1-y, x
		w, h = h, w
	}
	return tile.Point{X: x, Y: y}
}

// PlacedPrefab records a stamped prefab instance.
type PlacedPrefab struct {
	Prefab *Prefab
	Bounds tile.Rect
	Transformed
	Origin tile.Point
}

// Options configures PlacePrefabs.
type Options struct {
	Prefabs            []*Prefab
	Categories         []string
	Tags               []string
	MinLevel, MaxLevel int
	MaxPrefabs         int     // default 3
	Padding            int     // default 1
	MinDistance        int     // default 5
	EnsureConnectivity bool    // false unless set: no corridors are then extended from connections
	Seed               *uint64
}

func defaultOptions(opts Options) Options {
	if opts.MaxPrefabs <= 0 {
		opts.MaxPrefabs = 3
	}
	if opts.Padding <= 0 {
		opts.Padding = 1
	}
	if opts.MinDistance <= 0 {
		opts.MinDistance = 5
	}
	return opts
}

// PlacePrefabs filters Prefabs by category/tag/level, then repeatedly picks
// a weighted-random prefab, a random allowed rotation, and a 50/50 mirror,
// scanning the grid on a 2-tile stride for a valid all-WALL footprint that
// respects padding and MinDistance from prior placements.
func PlacePrefabs(g *tile.Grid, opts Options) []PlacedPrefab {
	opts = defaultOptions(opts)
	candidates := filterPrefabs(opts)
	if len(candidates) == 0 {
		return nil
	}

	var placed []PlacedPrefab
	rng.WithSeed(opts.Seed, func(r *rng.RNG) struct{} {
		maxAttempts := 10 * opts.MaxPrefabs
		for attempt := 0; attempt < maxAttempts && len(placed) < opts.MaxPrefabs; attempt++ {
			p := weightedPrefabPick(r, candidates)
			rotation := pickRotation(r, p)
			mirror := r.Bool()
			tr := TransformPrefab(p, rotation, mirror)

			pos, ok := findValidPosition(g, tr, placed, opts, r)
			if !ok {
				continue
			}
			stampPrefab(g, tr, pos)
			pp := PlacedPrefab{
				Prefab:      p,
				Transformed: tr,
				Origin:      pos,
				Bounds:      tile.Rect{X: pos.X, Y: pos.Y, Width: tr.Width, Height: tr.Height},
			}
			if opts.EnsureConnectivity {
				connectPrefab(g, tr, pos)
			}
			placed = append(placed, pp)
		}
		return struct{}{}
	})
	return placed
}

func filterPrefabs(opts Options) []*Prefab {
	var out []*Prefab
	for _, p := range opts.Prefabs {
		if len(opts.Categories) > 0 && !containsAny(p.Categories, opts.Categories) {
			continue
		}
		if len(opts.Tags) > 0 && !containsAny(p.Tags, opts.Tags) {
			continue
		}
		if opts.MinLevel > 0 && p.MaxLevel > 0 && p.MaxLevel < opts.MinLevel {
			continue
		}
		if opts.MaxLevel > 0 && p.MinLevel > opts.MaxLevel {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsAny(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if set[w] {
			return true
		}
	}
	return false
}

func weightedPrefabPick(r *rng.RNG, prefabs []*Prefab) *Prefab {
	weights := make([]float64, len(prefabs))
	for i, p := range prefabs {
		w := p.Weight
		if w <= 0 {
			w = 1
		}
		weights[i] = w
	}
	return rng.Weighted(r, prefabs, weights)
}

func pickRotation(r *rng.RNG, p *Prefab) int {
	allowed := p.Rotations
	if len(allowed) == 0 {
		allowed = []int{0, 90, 180, 270}
	}
	return rng.Pick(r, allowed)
}

func findValidPosition(g *tile.Grid, tr Transformed, placed []PlacedPrefab, opts Options, r *rng.RNG) (tile.Point, bool) {
	var valid []tile.Point
	for y := 1; y+tr.Height+opts.Padding < g.Height(); y += 2 {
		for x := 1; x+tr.Width+opts.Padding < g.Width(); x += 2 {
			candidate := tile.Point{X: x, Y: y}
			if isValidFootprint(g, tr, candidate, opts, placed) {
				valid = append(valid, candidate)
			}
		}
	}
	if len(valid) == 0 {
		return tile.Point{}, false
	}
	return rng.Pick(r, valid), true
}

func isValidFootprint(g *tile.Grid, tr Transformed, origin tile.Point, opts Options, placed []PlacedPrefab) bool {
	bounds := tile.Rect{
		X: origin.X - opts.Padding, Y: origin.Y - opts.Padding,
		Width: tr.Width + 2*opts.Padding, Height: tr.Height + 2*opts.Padding,
	}
	if bounds.X < 0 || bounds.Y < 0 || bounds.X+bounds.Width >= g.Width() || bounds.Y+bounds.Height >= g.Height() {
		return false
	}
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			if g.At(x, y) != tile.Wall {
				return false
			}
		}
	}
	for _, pp := range placed {
		expanded := pp.Bounds.Expand(opts.MinDistance)
		if expanded.Overlaps(bounds) {
			return false
		}
	}
	return true
}

func stampPrefab(g *tile.Grid, tr Transformed, origin tile.Point) {
	for y := 0; y < tr.Height; y++ {
		for x := 0; x < tr.Width; x++ {
			g.Set(origin.X+x, origin.Y+y, tr.Grid[y][x])
		}
	}
}

// connectPrefab extends a corridor outward from each transformed connection
// point in its facing direction until hitting existing FLOOR/CORRIDOR,
// capped at 10 tiles.
func connectPrefab(g *tile.Grid, tr Transformed, origin tile.Point) {
	for _, c := range tr.Connections {
		p := tile.Point{X: origin.X + c.Point.X, Y: origin.Y + c.Point.Y}
		for i := 0; i < 10; i++ {
			p = p.Add(c.Dir)
			if !g.InBounds(p.X, p.Y) {
				break
			}
			t := g.At(p.X, p.Y)
			if t == tile.Floor || t == tile.Corridor {
				break
			}
			g.Set(p.X, p.Y, tile.Corridor)
		}
	}
}

// PlacePrefabAt is the unchecked placement variant: it still requires the
// footprint to be all WALL, returning the placement and true, or a failure
// signal (false) otherwise.
func PlacePrefabAt(g *tile.Grid, p *Prefab, pos tile.Point, rotation int, mirror bool) (PlacedPrefab, bool) {
	tr := TransformPrefab(p, rotation, mirror)
	for y := 0; y < tr.Height; y++ {
		for x := 0; x < tr.Width; x++ {
			if !g.InBounds(pos.X+x, pos.Y+y) || g.At(pos.X+x, pos.Y+y) != tile.Wall {
				return PlacedPrefab{}, false
			}
		}
	}
	stampPrefab(g, tr, pos)
	return PlacedPrefab{
		Prefab:      p,
		Transformed: tr,
		Origin:      pos,
		Bounds:      tile.Rect{X: pos.X, Y: pos.Y, Width: tr.Width, Height: tr.Height},
	}, true
}
