package generator

import (
	"github.com/dshills/dunegen/pkg/modifier"
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// BSPOptions configures GenerateBSP (spec §4.4).
type BSPOptions struct {
	MinPartitionSize int // default 6
	Padding          int // room padding from its partition's edge, default 1
	MinRoomSize      int // default 4
	ShapeOptions     shape.Options
	Modifiers        []modifier.Modifier
	ModifierChance   float64 // default 0 (disabled)
	DoorChance       float64 // default 0.4
	Seed             *uint64
}

func defaultBSPOptions(opts BSPOptions) BSPOptions {
	if opts.MinPartitionSize <= 0 {
		opts.MinPartitionSize = 6
	}
	if opts.Padding <= 0 {
		opts.Padding = 1
	}
	if opts.MinRoomSize <= 0 {
		opts.MinRoomSize = 4
	}
	if opts.DoorChance == 0 {
		opts.DoorChance = 0.4
	}
	return opts
}

type bspNode struct {
	rect           tile.Rect
	left, right    *bspNode
	room           shape.RoomShape
	connectorPoint tile.Point
}

// GenerateBSP builds a dungeon by recursively splitting the interior
// (size-2) square into leaf partitions, carving a room shape in each leaf,
// and connecting siblings with L-shaped corridors in post-order.
func GenerateBSP(size int, opts BSPOptions) (*tile.Grid, error) {
	if err := ValidateSize("bsp", size); err != nil {
		return nil, err
	}
	opts = defaultBSPOptions(opts)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, tile.Wall)
		interior := tile.Rect{X: 1, Y: 1, Width: size - 2, Height: size - 2}
		root := splitBSP(interior, opts.MinPartitionSize, r)
		carveBSPRooms(g, root, opts, r)
		connectBSP(g, root, r, opts.DoorChance)
		g.FillBorder(tile.Wall)
		return g
	}), nil
}

func splitBSP(rect tile.Rect, minSize int, r *rng.RNG) *bspNode {
	if rect.Width < 2*minSize || rect.Height < 2*minSize {
		return &bspNode{rect: rect}
	}

	horizontal := r.Bool()
	wideAspect := float64(rect.Width) / float64(rect.Height)
	tallAspect := float64(rect.Height) / float64(rect.Width)
	if wideAspect > 1.25 {
		horizontal = false
	} else if tallAspect > 1.25 {
		horizontal = true
	}

	node := &bspNode{rect: rect}
	if horizontal {
		splitY := r.IntRange(rect.Y+minSize, rect.Y+rect.Height-minSize)
		top := tile.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: splitY - rect.Y}
		bottom := tile.Rect{X: rect.X, Y: splitY, Width: rect.Width, Height: rect.Y + rect.Height - splitY}
		node.left = splitBSP(top, minSize, r)
		node.right = splitBSP(bottom, minSize, r)
	} else {
		splitX := r.IntRange(rect.X+minSize, rect.X+rect.Width-minSize)
		left := tile.Rect{X: rect.X, Y: rect.Y, Width: splitX - rect.X, Height: rect.Height}
		right := tile.Rect{X: splitX, Y: rect.Y, Width: rect.X + rect.Width - splitX, Height: rect.Height}
		node.left = splitBSP(left, minSize, r)
		node.right = splitBSP(right, minSize, r)
	}
	return node
}

func carveBSPRooms(g *tile.Grid, node *bspNode, opts BSPOptions, r *rng.RNG) {
	if node == nil {
		return
	}
	if node.left == nil && node.right == nil {
		pad := opts.Padding
		availW := node.rect.Width - 2*pad
		availH := node.rect.Height - 2*pad
		if availW < opts.MinRoomSize {
			availW = opts.MinRoomSize
		}
		if availH < opts.MinRoomSize {
			availH = opts.MinRoomSize
		}
		w := r.IntRange(opts.MinRoomSize, maxInt(opts.MinRoomSize, availW))
		h := r.IntRange(opts.MinRoomSize, maxInt(opts.MinRoomSize, availH))
		w = minInt(w, node.rect.Width-2*pad)
		h = minInt(h, node.rect.Height-2*pad)
		w = maxInt(w, 1)
		h = maxInt(h, 1)
		maxX := node.rect.X + node.rect.Width - pad - w
		maxY := node.rect.Y + node.rect.Height - pad - h
		x := r.IntRange(node.rect.X+pad, maxInt(node.rect.X+pad, maxX))
		y := r.IntRange(node.rect.Y+pad, maxInt(node.rect.Y+pad, maxY))
		bounds := tile.Rect{X: x, Y: y, Width: w, Height: h}

		room := shape.GenerateRoomShape(bounds, opts.ShapeOptions, r)
		for _, p := range shape.GetShapeTiles(room) {
			g.SetPoint(p, tile.Floor)
		}
		for _, m := range opts.Modifiers {
			modifier.Apply(g, room, opts.ModifierChance, r, m)
		}
		node.room = room
		node.connectorPoint = shape.GetShapeCenter(room)
		return
	}
	carveBSPRooms(g, node.left, opts, r)
	carveBSPRooms(g, node.right, opts, r)
}

// connectBSP walks the tree in post-order, connecting each internal node's
// two children with an L-shaped corridor, and optionally converting narrow
// corridor spans into doors.
func connectBSP(g *tile.Grid, node *bspNode, r *rng.RNG, doorChance float64) {
	if node == nil || (node.left == nil && node.right == nil) {
		return
	}
	connectBSP(g, node.left, r, doorChance)
	connectBSP(g, node.right, r, doorChance)

	a := bestConnectionPoint(g, node.left, node.right.connectorPoint)
	b := bestConnectionPoint(g, node.right, node.left.connectorPoint)
	carveLCorridor(g, a, b, r)

	applyDoorPass(g, doorChance, r)
	node.connectorPoint = node.left.connectorPoint
}

// bestConnectionPoint returns the edge tile of node's subtree room set
// closest to target; falls back to the subtree's connector point.
func bestConnectionPoint(g *tile.Grid, node *bspNode, target tile.Point) tile.Point {
	if node.room != nil {
		best := node.connectorPoint
		bestDist := best.Manhattan(target)
		for _, p := range edgeTilesOf(g, shape.GetShapeTiles(node.room)) {
			if d := p.Manhattan(target); d < bestDist {
				best = p
				bestDist = d
			}
		}
		return best
	}
	leftPoint := bestConnectionPoint(g, node.left, target)
	rightPoint := bestConnectionPoint(g, node.right, target)
	if leftPoint.Manhattan(target) <= rightPoint.Manhattan(target) {
		return leftPoint
	}
	return rightPoint
}

func edgeTilesOf(g *tile.Grid, tiles []tile.Point) []tile.Point {
	set := make(map[tile.Point]bool, len(tiles))
	for _, p := range tiles {
		set[p] = true
	}
	var edges []tile.Point
	for _, p := range tiles {
		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if g.InBounds(np.X, np.Y) && !set[np] {
				edges = append(edges, p)
				break
			}
		}
	}
	if len(edges) == 0 {
		return tiles
	}
	return edges
}

// carveLCorridor draws a two-segment corridor between a and b, ordering the
// horizontal/vertical legs with 50/50 probability, turning WALL into
// CORRIDOR (floor tiles are left untouched).
func carveLCorridor(g *tile.Grid, a, b tile.Point, r *rng.RNG) {
	corner := tile.Point{X: b.X, Y: a.Y}
	if r.Bool() {
		corner = tile.Point{X: a.X, Y: b.Y}
	}
	carveLine(g, a, corner)
	carveLine(g, corner, b)
}

func carveLine(g *tile.Grid, a, b tile.Point) {
	x, y := a.X, a.Y
	stepX, stepY := sign(b.X-a.X), sign(b.Y-a.Y)
	for x != b.X {
		carveCorridorTile(g, x, y)
		x += stepX
	}
	for y != b.Y {
		carveCorridorTile(g, x, y)
		y += stepY
	}
	carveCorridorTile(g, x, y)
}

func carveCorridorTile(g *tile.Grid, x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	if g.At(x, y) == tile.Wall {
		g.Set(x, y, tile.Corridor)
	}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// applyDoorPass finds CORRIDOR tiles whose horizontal or vertical span
// between walls is <= 2 and which abut a FLOOR tile, converting each such
// tile to DOOR on its own with probability doorChance; the other tile of a
// two-tile span is not converted together with it.
func applyDoorPass(g *tile.Grid, doorChance float64, r *rng.RNG) {
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) != tile.Corridor {
				continue
			}
			if !abutsFloor(g, x, y) {
				continue
			}
			span := corridorSpan(g, x, y)
			if span > 2 {
				continue
			}
			if r.Chance(doorChance) {
				g.Set(x, y, tile.Door)
			}
		}
	}
}

func abutsFloor(g *tile.Grid, x, y int) bool {
	return g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Floor }) > 0
}

// corridorSpan measures the shorter of the horizontal/vertical run of
// non-wall tiles through (x,y) bounded by walls.
func corridorSpan(g *tile.Grid, x, y int) int {
	horiz := 1
	for gx := x - 1; gx >= 0 && g.At(gx, y) != tile.Wall; gx-- {
		horiz++
	}
	for gx := x + 1; gx < g.Width() && g.At(gx, y) != tile.Wall; gx++ {
		horiz++
	}
	vert := 1
	for gy := y - 1; gy >= 0 && g.At(x, gy) != tile.Wall; gy-- {
		vert++
	}
	for gy := y + 1; gy < g.Height() && g.At(x, gy) != tile.Wall; gy++ {
		vert++
	}
	if horiz < vert {
		return horiz
	}
	return vert
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
