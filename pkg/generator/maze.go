package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// MazeAlgorithm selects the carving strategy for GenerateMaze (spec §4.4).
type MazeAlgorithm string

const (
	MazeBacktracker MazeAlgorithm = "backtracker"
	MazePrim        MazeAlgorithm = "prim"
	MazeDivision    MazeAlgorithm = "division"
)

// MazeOptions configures GenerateMaze.
type MazeOptions struct {
	Algorithm MazeAlgorithm // default MazeBacktracker
	AddLoops  float64       // fraction of interior walls additionally opened, default 0
	Openness  float64       // recursive-division: probability a partition wall is skipped, default 0
	Seed      *uint64
}

func defaultMazeOptions(opts MazeOptions) MazeOptions {
	if opts.Algorithm == "" {
		opts.Algorithm = MazeBacktracker
	}
	return opts
}

// GenerateMaze builds a perfect maze on a grid where size must be odd so
// every cell lands on an odd coordinate with a wall lattice between them; an
// even size is rounded down to the next lower odd value. Uses tile.MazeWall and
// tile.MazePassage, tagging the start and end with tile.MazeStart /
// tile.MazeEnd (grounded on yuru-sha-gorogue's maze_builder.go 2-cell-stride
// recursive backtracker).
func GenerateMaze(size int, opts MazeOptions) (*tile.Grid, error) {
	if err := ValidateSize("maze", size); err != nil {
		return nil, err
	}
	opts = defaultMazeOptions(opts)
	if size%2 == 0 {
		size--
	}

	result := rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, mazeWallTile())
		switch opts.Algorithm {
		case MazePrim:
			carveMazePrim(g, r)
		case MazeDivision:
			fillMazeOpen(g)
			carveMazeDivision(g, tile.Rect{X: 0, Y: 0, Width: size, Height: size}, opts.Openness, r)
		default:
			carveMazeBacktracker(g, 1, 1, make(map[tile.Point]bool), r)
		}
		if opts.AddLoops > 0 {
			addMazeLoops(g, opts.AddLoops, r)
		}
		tagMazeEndpoints(g)
		return g
	})
	return result, nil
}

func mazeWallTile() tile.Tile { return tile.Tile(tile.MazeWall) }
func mazePassageTile() tile.Tile { return tile.Tile(tile.MazePassage) }

func carveMazeBacktracker(g *tile.Grid, x, y int, visited map[tile.Point]bool, r *rng.RNG) {
	g.Set(x, y, mazePassageTile())
	visited[tile.Point{X: x, Y: y}] = true

	dirs := []tile.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}
	rng.Shuffle(r, dirs)

	for _, d := range dirs {
		nx, ny := x+d.X, y+d.Y
		if nx < 1 || nx >= g.Width()-1 || ny < 1 || ny >= g.Height()-1 {
			continue
		}
		if visited[tile.Point{X: nx, Y: ny}] {
			continue
		}
		g.Set(x+d.X/2, y+d.Y/2, mazePassageTile())
		carveMazeBacktracker(g, nx, ny, visited, r)
	}
}

// carveMazePrim grows the maze frontier-first (randomized Prim's algorithm):
// start from one cell, repeatedly pick a random frontier cell two steps
// outside the carved region, and open it together with the wall between it
// and its first already-carved neighbor cell.
func carveMazePrim(g *tile.Grid, r *rng.RNG) {
	visited := map[tile.Point]bool{}
	var frontier []tile.Point

	start := tile.Point{X: 1, Y: 1}
	g.SetPoint(start, mazePassageTile())
	visited[start] = true
	addMazeFrontier(g, start, visited, &frontier)

	for len(frontier) > 0 {
		i := r.Intn(len(frontier))
		cell := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if visited[cell] {
			continue
		}

		neighbor, ok := mazeConnectedNeighbor(g, cell, visited)
		if !ok {
			continue
		}
		wall := tile.Point{X: (cell.X + neighbor.X) / 2, Y: (cell.Y + neighbor.Y) / 2}
		g.SetPoint(wall, mazePassageTile())
		g.SetPoint(cell, mazePassageTile())
		visited[cell] = true
		addMazeFrontier(g, cell, visited, &frontier)
	}
}

func addMazeFrontier(g *tile.Grid, from tile.Point, visited map[tile.Point]bool, frontier *[]tile.Point) {
	for _, d := range []tile.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}} {
		np := tile.Point{X: from.X + d.X, Y: from.Y + d.Y}
		if np.X < 1 || np.X >= g.Width()-1 || np.Y < 1 || np.Y >= g.Height()-1 {
			continue
		}
		if !visited[np] {
			*frontier = append(*frontier, np)
		}
	}
}

func mazeConnectedNeighbor(g *tile.Grid, cell tile.Point, visited map[tile.Point]bool) (tile.Point, bool) {
	for _, d := range []tile.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}} {
		np := tile.Point{X: cell.X + d.X, Y: cell.Y + d.Y}
		if g.InBounds(np.X, np.Y) && visited[np] {
			return np, true
		}
	}
	return tile.Point{}, false
}

func fillMazeOpen(g *tile.Grid) {
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			g.Set(x, y, mazePassageTile())
		}
	}
}

// carveMazeDivision recursively bisects region with a wall pierced by a
// single gap, skipping the wall (leaving the chamber open) with probability
// openness.
func carveMazeDivision(g *tile.Grid, region tile.Rect, openness float64, r *rng.RNG) {
	if region.Width < 5 && region.Height < 5 {
		return
	}
	if r.Chance(openness) {
		return
	}

	horizontal := region.Height > region.Width
	if region.Width == region.Height {
		horizontal = r.Bool()
	}

	if horizontal {
		if region.Height < 5 {
			return
		}
		wallY := region.Y + 2 + 2*(r.Intn(maxInt(1, (region.Height-4)/2)))
		gapX := region.X + 2*r.Intn(maxInt(1, region.Width/2))
		for x := region.X; x < region.X+region.Width; x++ {
			if x != gapX {
				g.Set(x, wallY, mazeWallTile())
			}
		}
		top := tile.Rect{X: region.X, Y: region.Y, Width: region.Width, Height: wallY - region.Y}
		bottom := tile.Rect{X: region.X, Y: wallY + 1, Width: region.Width, Height: region.Y + region.Height - wallY - 1}
		carveMazeDivision(g, top, openness, r)
		carveMazeDivision(g, bottom, openness, r)
	} else {
		if region.Width < 5 {
			return
		}
		wallX := region.X + 2 + 2*(r.Intn(maxInt(1, (region.Width-4)/2)))
		gapY := region.Y + 2*r.Intn(maxInt(1, region.Height/2))
		for y := region.Y; y < region.Y+region.Height; y++ {
			if y != gapY {
				g.Set(wallX, y, mazeWallTile())
			}
		}
		left := tile.Rect{X: region.X, Y: region.Y, Width: wallX - region.X, Height: region.Height}
		right := tile.Rect{X: wallX + 1, Y: region.Y, Width: region.X + region.Width - wallX - 1, Height: region.Height}
		carveMazeDivision(g, left, openness, r)
		carveMazeDivision(g, right, openness, r)
	}
}

// addMazeLoops opens a fraction of interior walls that separate two passage
// cells, turning the perfect maze into a braided one.
func addMazeLoops(g *tile.Grid, fraction float64, r *rng.RNG) {
	var candidates []tile.Point
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) != mazeWallTile() {
				continue
			}
			if (g.At(x-1, y) == mazePassageTile() && g.At(x+1, y) == mazePassageTile()) ||
				(g.At(x, y-1) == mazePassageTile() && g.At(x, y+1) == mazePassageTile()) {
				candidates = append(candidates, tile.Point{X: x, Y: y})
			}
		}
	}
	rng.Shuffle(r, candidates)
	n := int(fraction * float64(len(candidates)))
	for i := 0; i < n && i < len(candidates); i++ {
		g.SetPoint(candidates[i], mazePassageTile())
	}
}

func tagMazeEndpoints(g *tile.Grid) {
	start := findFirstPassage(g, false)
	end := findFirstPassage(g, true)
	if start != nil {
		g.SetPoint(*start, tile.Tile(tile.MazeStart))
	}
	if end != nil {
		g.SetPoint(*end, tile.Tile(tile.MazeEnd))
	}
}

func findFirstPassage(g *tile.Grid, reverse bool) *tile.Point {
	if !reverse {
		for y := 1; y < g.Height()-1; y++ {
			for x := 1; x < g.Width()-1; x++ {
				if g.At(x, y) == mazePassageTile() {
					p := tile.Point{X: x, Y: y}
					return &p
				}
			}
		}
		return nil
	}
	for y := g.Height() - 2; y >= 1; y-- {
		for x := g.Width() - 2; x >= 1; x-- {
			if g.At(x, y) == mazePassageTile() {
				p := tile.Point{X: x, Y: y}
				return &p
			}
		}
	}
	return nil
}
