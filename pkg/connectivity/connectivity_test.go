package connectivity

import (
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringGrid() *tile.Grid {
	g := tile.NewGrid(10, 10, tile.Wall)
	for y := 2; y <= 7; y++ {
		for x := 2; x <= 7; x++ {
			dx, dy := x-5, y-5
			if dx*dx+dy*dy <= 10 {
				g.Set(x, y, tile.Floor)
			}
		}
	}
	g.Set(5, 5, tile.Wall) // interior pillar
	return g
}

func TestFindDisconnectedRegionsSingleRoom(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	regions := FindDisconnectedRegions(g)
	require.Len(t, regions, 1)
	assert.True(t, IsFullyConnected(g))
}

func TestFindDisconnectedRegionsTwoRooms(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	for y := 6; y < 9; y++ {
		for x := 6; x < 9; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	assert.False(t, IsFullyConnected(g))
	regions := FindDisconnectedRegions(g)
	assert.Len(t, regions, 2)
}

// S4: A* around a pillar.
func TestScenarioS4AStarAroundPillar(t *testing.T) {
	g := ringGrid()
	g.Set(1, 1, tile.Floor)
	g.Set(8, 8, tile.Floor)
	// connect the corners into the ring with cardinal staircase steps
	for i := 1; i <= 2; i++ {
		g.Set(1+i, i, tile.Floor)
		g.Set(1+i, 1+i, tile.Floor)
		g.Set(8-i, 9-i, tile.Floor)
		g.Set(8-i, 8-i, tile.Floor)
	}

	path, ok := FindPath(g, tile.Point{X: 1, Y: 1}, tile.Point{X: 8, Y: 8})
	require.True(t, ok)
	assert.LessOrEqual(t, len(path), 30)
	for i := 1; i < len(path); i++ {
		d := path[i-1].Manhattan(path[i])
		assert.Equal(t, 1, d)
	}
	for _, p := range path {
		assert.True(t, tile.IsWalkable(g.Get(p)))
	}
}

func TestFindPathNoPathSignalsFalse(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	g.Set(1, 1, tile.Floor)
	g.Set(8, 8, tile.Floor)
	_, ok := FindPath(g, tile.Point{X: 1, Y: 1}, tile.Point{X: 8, Y: 8})
	assert.False(t, ok)
}

// Two FLOOR rooms bridged by a single CORRIDOR tile: a fully-connected
// walkable space (IsFullyConnected true) must still segment into two
// distinct rooms joined by one adjacency edge, not collapse to one room.
func TestAnalyzeRoomAdjacency(t *testing.T) {
	g := tile.NewGrid(12, 3, tile.Wall)
	for x := 1; x <= 4; x++ {
		g.Set(x, 1, tile.Floor)
	}
	g.Set(5, 1, tile.Corridor)
	for x := 6; x <= 9; x++ {
		g.Set(x, 1, tile.Floor)
	}

	assert.True(t, IsFullyConnected(g))

	report := Analyze(g, DefaultMinRoomSize)
	require.Len(t, report.Rooms, 2)
	require.Len(t, report.Adjacency[report.Rooms[0].ID], 1)
	assert.Equal(t, report.Rooms[1].ID, report.Adjacency[report.Rooms[0].ID][0])
	assert.True(t, report.Rooms[0].Connected)
	assert.True(t, report.Rooms[1].Connected)
	require.Len(t, report.Connections, 1)
}

func TestAnalyzeDiscardsRoomsBelowMinSize(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	g.Set(2, 2, tile.Floor)
	g.Set(3, 2, tile.Floor) // 2-tile sliver, below the default min room size

	report := Analyze(g, 0)
	assert.Empty(t, report.Rooms)
}

func TestAnalyzeRoomFieldsPopulated(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			g.Set(x, y, tile.Floor)
		}
	}

	report := Analyze(g, DefaultMinRoomSize)
	require.Len(t, report.Rooms, 1)
	room := report.Rooms[0]
	assert.Equal(t, tile.Rect{X: 2, Y: 2, Width: 3, Height: 3}, room.Bounds)
	assert.Equal(t, tile.Point{X: 3, Y: 3}, room.Center)
	assert.Equal(t, 9, room.Area)
	assert.Equal(t, SizeSmall, room.Size)
	assert.Equal(t, RoomGeneric, room.Type)
	assert.False(t, room.Connected)
}

func TestAnalyzeRoomTypeFromStairs(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	g.Set(3, 3, tile.StairsUp)

	report := Analyze(g, DefaultMinRoomSize)
	require.Len(t, report.Rooms, 1)
	assert.Equal(t, RoomEntrance, report.Rooms[0].Type)
}

func TestFindRoomPathTrivial(t *testing.T) {
	report := Report{Adjacency: map[int][]int{0: {1}, 1: {0, 2}, 2: {1}}}
	path := FindRoomPath(report, 0, 2)
	assert.Equal(t, []int{0, 1, 2}, path)
}
