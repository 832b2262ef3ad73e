// Package connectivity analyzes a tile.Grid's reachability structure at two
// levels: flood fill / disconnected-region detection over the general
// walkable set (FLOOR, CORRIDOR, DOOR, stairs, and the rest), and a FLOOR-only
// room segmentation with a separate corridor/door-blob adjacency pass, plus
// A* pathfinding. Grounded on the teacher's pkg/graph.Graph (BFS reachability,
// adjacency lists, GetPath) generalized from named string-id rooms to tile
// coordinates and numeric room ids (spec §4.7, §9 "connectivity graph
// ownership": rooms are referenced by numeric id, the adjacency map is id ->
// []id, and tile membership is duplicated inside each room rather than
// stored as back-references).
package connectivity

import (
	"container/heap"
	"sort"

	"github.com/dshills/dunegen/pkg/tile"
)

// RoomSize classifies a room's tile count per spec §3's fixed bands.
type RoomSize string

const (
	SizeTiny   RoomSize = "tiny"
	SizeSmall  RoomSize = "small"
	SizeMedium RoomSize = "medium"
	SizeLarge  RoomSize = "large"
	SizeHuge   RoomSize = "huge"
)

func classifyRoomSize(area int) RoomSize {
	switch {
	case area < 9:
		return SizeTiny
	case area < 25:
		return SizeSmall
	case area < 64:
		return SizeMedium
	case area < 144:
		return SizeLarge
	default:
		return SizeHuge
	}
}

// RoomType is a coarse semantic label for a room. Analyze can only infer a
// type from tile contents it can see directly (stairs, altars, treasure);
// GUARD, STORAGE, BARRACKS and THRONE require game-level context (population,
// prefab category) this package never has, so rooms lacking distinguishing
// tiles default to GENERIC.
type RoomType string

const (
	RoomGeneric  RoomType = "GENERIC"
	RoomEntrance RoomType = "ENTRANCE"
	RoomTreasure RoomType = "TREASURE"
	RoomGuard    RoomType = "GUARD"
	RoomStorage  RoomType = "STORAGE"
	RoomThrone   RoomType = "THRONE"
	RoomBarracks RoomType = "BARRACKS"
	RoomChapel   RoomType = "CHAPEL"
)

// Room is a maximal 4-connected component of FLOOR tiles, as produced by
// Analyze's room segmentation (distinct from the general walkable-tile
// components FindDisconnectedRegions returns).
type Room struct {
	ID        int
	Tiles     []tile.Point
	Bounds    tile.Rect
	Center    tile.Point
	Area      int
	Size      RoomSize
	Type      RoomType
	Connected bool
}

// Connection records one CORRIDOR/DOOR blob bridging two rooms, along with
// the blob's own tiles.
type Connection struct {
	RoomA, RoomB int
	Tiles        []tile.Point
}

// Report is the result of Analyze: FLOOR-only room segmentation plus the
// adjacency graph built by flooding CORRIDOR/DOOR blobs separately and
// recording which rooms each blob touches.
type Report struct {
	Rooms       []Room
	Connections []Connection
	Adjacency   map[int][]int
}

// DefaultMinRoomSize is the room-segmentation discard threshold spec §4.7
// names for analyze_connectivity.
const DefaultMinRoomSize = 4

// FloodFill returns every walkable tile reachable from start via cardinal
// steps through other walkable tiles.
func FloodFill(g *tile.Grid, start tile.Point) map[tile.Point]bool {
	visited := map[tile.Point]bool{}
	if !g.InBounds(start.X, start.Y) || !tile.IsWalkable(g.Get(start)) {
		return visited
	}
	queue := []tile.Point{start}
	visited[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if !g.InBounds(np.X, np.Y) || visited[np] || !tile.IsWalkable(g.Get(np)) {
				continue
			}
			visited[np] = true
			queue = append(queue, np)
		}
	}
	return visited
}

// FindDisconnectedRegions partitions every walkable tile into its maximal
// 4-connected component, returning one slice of points per region.
func FindDisconnectedRegions(g *tile.Grid) [][]tile.Point {
	seen := map[tile.Point]bool{}
	var regions [][]tile.Point
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := tile.Point{X: x, Y: y}
			if seen[p] || !tile.IsWalkable(g.At(x, y)) {
				continue
			}
			region := FloodFill(g, p)
			points := make([]tile.Point, 0, len(region))
			for rp := range region {
				points = append(points, rp)
				seen[rp] = true
			}
			regions = append(regions, points)
		}
	}
	return regions
}

// IsFullyConnected reports whether every walkable tile belongs to a single
// region.
func IsFullyConnected(g *tile.Grid) bool {
	regions := FindDisconnectedRegions(g)
	return len(regions) <= 1
}

// floodComponent collects the maximal 4-connected component containing
// start, restricted to tiles matching. Tiles already present in seen are
// skipped; newly visited tiles are marked in seen as they're collected.
func floodComponent(g *tile.Grid, start tile.Point, seen map[tile.Point]bool, match func(tile.Tile) bool) []tile.Point {
	if seen[start] {
		return nil
	}
	queue := []tile.Point{start}
	seen[start] = true
	var out []tile.Point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for _, d := range tile.Cardinals {
			np := p.Add(d)
			if !g.InBounds(np.X, np.Y) || seen[np] || !match(g.Get(np)) {
				continue
			}
			seen[np] = true
			queue = append(queue, np)
		}
	}
	return out
}

func boundsOf(tiles []tile.Point) tile.Rect {
	minX, minY := tiles[0].X, tiles[0].Y
	maxX, maxY := tiles[0].X, tiles[0].Y
	for _, p := range tiles[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return tile.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// classifyRoomType infers a semantic label from tile contents alone. Stairs,
// altars and treasure are each a single non-FLOOR tile sitting inside (or on
// the border of) the room's FLOOR footprint, so the scan covers bounds
// rather than just the FLOOR tiles themselves. It can only ever recognize
// ENTRANCE/CHAPEL/TREASURE this way; GUARD, STORAGE, BARRACKS and THRONE
// need information (population, prefab category) that isn't visible from
// the grid.
func classifyRoomType(g *tile.Grid, bounds tile.Rect) RoomType {
	hasStairs, hasAltar, hasTreasure := false, false, false
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			switch g.At(x, y) {
			case tile.StairsUp, tile.StairsDown:
				hasStairs = true
			case tile.Altar:
				hasAltar = true
			case tile.Treasure, tile.Chest:
				hasTreasure = true
			}
		}
	}
	switch {
	case hasStairs:
		return RoomEntrance
	case hasAltar:
		return RoomChapel
	case hasTreasure:
		return RoomTreasure
	default:
		return RoomGeneric
	}
}

func isBridgeTile(t tile.Tile) bool {
	return t == tile.Corridor || t == tile.Door || t == tile.SecretDoor
}

// Analyze performs room segmentation per spec §4.7: a FLOOR-only flood fill
// finds rooms (components smaller than minRoomSize, or <= 0 for
// DefaultMinRoomSize, are discarded), then a separate flood over
// CORRIDOR/DOOR/SECRET_DOOR blobs determines which rooms each blob bridges,
// building the adjacency graph from those touches rather than from the
// room partition itself.
func Analyze(g *tile.Grid, minRoomSize int) Report {
	if minRoomSize <= 0 {
		minRoomSize = DefaultMinRoomSize
	}

	floorSeen := map[tile.Point]bool{}
	var rooms []Room
	owner := map[tile.Point]int{}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := tile.Point{X: x, Y: y}
			if floorSeen[p] || g.At(x, y) != tile.Floor {
				continue
			}
			comp := floodComponent(g, p, floorSeen, func(t tile.Tile) bool { return t == tile.Floor })
			if len(comp) < minRoomSize {
				continue
			}
			id := len(rooms)
			bounds := boundsOf(comp)
			rooms = append(rooms, Room{
				ID:     id,
				Tiles:  comp,
				Bounds: bounds,
				Center: bounds.Center(),
				Area:   len(comp),
				Size:   classifyRoomSize(len(comp)),
				Type:   classifyRoomType(g, bounds),
			})
			for _, rp := range comp {
				owner[rp] = id
			}
		}
	}

	bridgeSeen := map[tile.Point]bool{}
	var connections []Connection
	adjacency := map[int][]int{}
	seenPair := map[[2]int]bool{}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := tile.Point{X: x, Y: y}
			if bridgeSeen[p] || !isBridgeTile(g.At(x, y)) {
				continue
			}
			blob := floodComponent(g, p, bridgeSeen, isBridgeTile)

			touched := map[int]bool{}
			for _, bp := range blob {
				for _, d := range tile.Cardinals {
					np := bp.Add(d)
					if !g.InBounds(np.X, np.Y) {
						continue
					}
					if rid, ok := owner[np]; ok {
						touched[rid] = true
					}
				}
			}
			ids := make([]int, 0, len(touched))
			for rid := range touched {
				ids = append(ids, rid)
			}
			sort.Ints(ids)

			for i := 0; i < len(ids); i++ {
				for j := i + 1; j < len(ids); j++ {
					a, b := ids[i], ids[j]
					key := [2]int{a, b}
					if !seenPair[key] {
						seenPair[key] = true
						adjacency[a] = append(adjacency[a], b)
						adjacency[b] = append(adjacency[b], a)
					}
					connections = append(connections, Connection{RoomA: a, RoomB: b, Tiles: blob})
				}
			}
		}
	}

	for i := range rooms {
		rooms[i].Connected = len(adjacency[rooms[i].ID]) > 0
	}

	return Report{Rooms: rooms, Connections: connections, Adjacency: adjacency}
}

// FindRoomPath runs BFS over the room adjacency graph, returning the
// sequence of room ids from fromRoom to toRoom inclusive, or nil if no path
// exists.
func FindRoomPath(report Report, fromRoom, toRoom int) []int {
	if fromRoom == toRoom {
		return []int{fromRoom}
	}
	visited := map[int]bool{fromRoom: true}
	parent := map[int]int{}
	queue := []int{fromRoom}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range report.Adjacency[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			if next == toRoom {
				path := []int{toRoom}
				for n := cur; ; n = parent[n] {
					path = append([]int{n}, path...)
					if n == fromRoom {
						break
					}
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// astarNode is an entry in the A* open set priority queue.
type astarNode struct {
	p    tile.Point
	g, f float64
}

type astarQueue []*astarNode

func (q astarQueue) Len() int            { return len(q) }
func (q astarQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q astarQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *astarQueue) Push(x interface{}) { *q = append(*q, x.(*astarNode)) }
func (q *astarQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// FindPath runs A* with Manhattan-distance heuristic from start to goal over
// g's walkable tiles, returning the path (inclusive of both endpoints) and
// true, or nil and false if no path exists. Both start and goal must be
// walkable.
func FindPath(g *tile.Grid, start, goal tile.Point) ([]tile.Point, bool) {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil, false
	}
	if !tile.IsWalkable(g.Get(start)) || !tile.IsWalkable(g.Get(goal)) {
		return nil, false
	}

	open := &astarQueue{{p: start, g: 0, f: float64(start.Manhattan(goal))}}
	heap.Init(open)
	cameFrom := map[tile.Point]tile.Point{}
	bestG := map[tile.Point]float64{start: 0}
	closed := map[tile.Point]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if closed[current.p] {
			continue
		}
		if current.p == goal {
			return reconstructPath(cameFrom, start, goal), true
		}
		closed[current.p] = true

		for _, d := range tile.Cardinals {
			np := current.p.Add(d)
			if !g.InBounds(np.X, np.Y) || !tile.IsWalkable(g.Get(np)) || closed[np] {
				continue
			}
			tentativeG := current.g + 1
			if existing, ok := bestG[np]; ok && tentativeG >= existing {
				continue
			}
			bestG[np] = tentativeG
			cameFrom[np] = current.p
			heap.Push(open, &astarNode{p: np, g: tentativeG, f: tentativeG + float64(np.Manhattan(goal))})
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[tile.Point]tile.Point, start, goal tile.Point) []tile.Point {
	path := []tile.Point{goal}
	cur := goal
	for cur != start {
		cur = cameFrom[cur]
		path = append([]tile.Point{cur}, path...)
	}
	return path
}

// FindPathAvoiding is FindPath with an additional blocked set (e.g. tiles
// occupied by other units) that the path may not cross, except at goal
// itself. Used by simulation movement, which excludes the mover from its
// own occupied set before calling this.
func FindPathAvoiding(g *tile.Grid, start, goal tile.Point, blocked map[tile.Point]bool) ([]tile.Point, bool) {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil, false
	}
	if !tile.IsWalkable(g.Get(start)) || !tile.IsWalkable(g.Get(goal)) {
		return nil, false
	}

	open := &astarQueue{{p: start, g: 0, f: float64(start.Manhattan(goal))}}
	heap.Init(open)
	cameFrom := map[tile.Point]tile.Point{}
	bestG := map[tile.Point]float64{start: 0}
	closed := map[tile.Point]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if closed[current.p] {
			continue
		}
		if current.p == goal {
			return reconstructPath(cameFrom, start, goal), true
		}
		closed[current.p] = true

		for _, d := range tile.Cardinals {
			np := current.p.Add(d)
			if !g.InBounds(np.X, np.Y) || !tile.IsWalkable(g.Get(np)) || closed[np] {
				continue
			}
			if blocked[np] && np != goal {
				continue
			}
			tentativeG := current.g + 1
			if existing, ok := bestG[np]; ok && tentativeG >= existing {
				continue
			}
			bestG[np] = tentativeG
			cameFrom[np] = current.p
			heap.Push(open, &astarNode{p: np, g: tentativeG, f: tentativeG + float64(np.Manhattan(goal))})
		}
	}
	return nil, false
}
