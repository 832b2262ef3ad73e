package tile

// Grid is a row-major 2D tile container. Every row has equal length; the
// zero value is not usable, construct with NewGrid.
//
// A Grid is owned by its producer: generators return freshly-owned grids,
// and post-process/modifier operations mutate a Grid in place.
type Grid struct {
	width, height int
	cells         []Tile
}

// NewGrid allocates a width x height grid filled with fill.
func NewGrid(width, height int, fill Tile) *Grid {
	cells := make([]Tile, width*height)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y). It panics on out-of-bounds coordinates;
// callers that don't already know a point is in-bounds should check
// InBounds first.
func (g *Grid) At(x, y int) Tile {
	return g.cells[y*g.width+x]
}

// Get is the Point-based variant of At.
func (g *Grid) Get(p Point) Tile { return g.At(p.X, p.Y) }

// Set writes t at (x, y). It is a no-op when out of bounds, matching the
// generators' habit of carving near edges without repeated bounds checks.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = t
}

// SetPoint is the Point-based variant of Set.
func (g *Grid) SetPoint(p Point, t Tile) { g.Set(p.X, p.Y, t) }

// Clone returns a deep, independent copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Count returns the number of cells equal to t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// CountWalkable returns the number of walkable cells under the default rule.
func (g *Grid) CountWalkable() int {
	n := 0
	for _, c := range g.cells {
		if IsWalkable(c) {
			n++
		}
	}
	return n
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, t Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// FillBorder sets every tile on the outer ring (x in {0,w-1} or y in
// {0,h-1}) to t. Dungeon generators use this to enforce the one-tile wall
// border invariant (spec §3, testable property 2).
func (g *Grid) FillBorder(t Tile) {
	for x := 0; x < g.width; x++ {
		g.Set(x, 0, t)
		g.Set(x, g.height-1, t)
	}
	for y := 0; y < g.height; y++ {
		g.Set(0, y, t)
		g.Set(g.width-1, y, t)
	}
}

// CardinalNeighborCount returns how many of the 4 cardinal neighbors of
// (x, y) satisfy pred. Out-of-bounds neighbors are not counted.
func (g *Grid) CardinalNeighborCount(x, y int, pred func(Tile) bool) int {
	n := 0
	for _, d := range Cardinals {
		nx, ny := x+d.DX, y+d.DY
		if g.InBounds(nx, ny) && pred(g.At(nx, ny)) {
			n++
		}
	}
	return n
}

// MooreNeighborCount returns how many of the 8 surrounding cells of (x, y)
// satisfy pred. Out-of-bounds neighbors count as satisfying pred when
// treatEdgeAsTrue is set (used by cellular automata, which treats the map
// edge as permanent wall).
func (g *Grid) MooreNeighborCount(x, y int, pred func(Tile) bool, treatEdgeAsTrue bool) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				if treatEdgeAsTrue {
					n++
				}
				continue
			}
			if pred(g.At(nx, ny)) {
				n++
			}
		}
	}
	return n
}
