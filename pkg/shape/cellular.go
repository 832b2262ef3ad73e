package shape

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Cellular is a shape carved by cellular-automata smoothing over the
// bounding rect, keeping only the largest connected region (spec §4.2).
type Cellular struct {
	TileList []tile.Point
	bbox     tile.Rect
}

// CellularOptions configures the automaton pass.
type CellularOptions struct {
	Density     float64 // initial fill probability, default 0.45
	Iterations  int     // smoothing passes, default 4
	BirthLimit  int     // default 4
	DeathLimit  int     // default 3
}

// DefaultCellularOptions returns the spec defaults.
func DefaultCellularOptions() CellularOptions {
	return CellularOptions{Density: 0.45, Iterations: 4, BirthLimit: 4, DeathLimit: 3}
}

// NewCellular builds a Cellular shape within bounds.
func NewCellular(bounds tile.Rect, opts CellularOptions, r *rng.RNG) *Cellular {
	w, h := bounds.Width, bounds.Height
	cells := make([][]bool, h)
	for y := range cells {
		cells[y] = make([]bool, w)
		for x := range cells[y] {
			cells[y][x] = r.Chance(opts.Density)
		}
	}

	for i := 0; i < opts.Iterations; i++ {
		cells = stepAutomaton(cells, opts)
	}

	region := largestConnectedRegion(cells)
	if len(region) == 0 {
		// Fallback: shrunk-by-1 filled rectangle.
		rect := tile.Rect{X: bounds.X + 1, Y: bounds.Y + 1, Width: maxInt(1, w-2), Height: maxInt(1, h-2)}
		return &Cellular{TileList: (&Rectangle{Rect: rect}).Tiles(), bbox: rect}
	}

	tiles := make([]tile.Point, 0, len(region))
	for _, p := range region {
		tiles = append(tiles, tile.Point{X: bounds.X + p.X, Y: bounds.Y + p.Y})
	}
	return &Cellular{TileList: tiles, bbox: bboxOf(tiles)}
}

func stepAutomaton(cells [][]bool, opts CellularOptions) [][]bool {
	h := len(cells)
	if h == 0 {
		return cells
	}
	w := len(cells[0])
	next := make([][]bool, h)
	for y := range next {
		next[y] = make([]bool, w)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := mooreCount(cells, x, y)
			if cells[y][x] {
				next[y][x] = neighbors >= opts.DeathLimit
			} else {
				next[y][x] = neighbors > opts.BirthLimit
			}
		}
	}
	return next
}

func mooreCount(cells [][]bool, x, y int) int {
	h := len(cells)
	w := len(cells[0])
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				n++ // edges treated as walls
				continue
			}
			if cells[ny][nx] {
				n++
			}
		}
	}
	return n
}

// largestConnectedRegion cardinal-flood-fills the floor cells and returns
// the largest connected component.
func largestConnectedRegion(cells [][]bool) []tile.Point {
	h := len(cells)
	if h == 0 {
		return nil
	}
	w := len(cells[0])
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var best []tile.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !cells[y][x] || visited[y][x] {
				continue
			}
			region := floodFillBool(cells, visited, x, y)
			if len(region) > len(best) {
				best = region
			}
		}
	}
	return best
}

func floodFillBool(cells, visited [][]bool, sx, sy int) []tile.Point {
	h := len(cells)
	w := len(cells[0])
	stack := []tile.Point{{X: sx, Y: sy}}
	visited[sy][sx] = true
	var region []tile.Point
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)
		for _, d := range tile.Cardinals {
			nx, ny := p.X+d.DX, p.Y+d.DY
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if cells[ny][nx] && !visited[ny][nx] {
				visited[ny][nx] = true
				stack = append(stack, tile.Point{X: nx, Y: ny})
			}
		}
	}
	return region
}

func (c *Cellular) Tiles() []tile.Point          { return c.TileList }
func (c *Cellular) Center() tile.Point           { return centroidOf(c.TileList) }
func (c *Cellular) BBox() tile.Rect              { return c.bbox }
func (c *Cellular) FitsIn(bounds tile.Rect) bool { return fitsIn(c.bbox, bounds) }
