package prefab

import (
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShrine() *Prefab {
	grid := [][]tile.Tile{
		{tile.Wall, tile.Wall, tile.Wall},
		{tile.Wall, tile.Floor, tile.Wall},
		{tile.Wall, tile.Wall, tile.Wall},
	}
	return &Prefab{
		Name: "shrine",
		Grid: grid,
		Connections: []Connection{
			{Point: tile.Point{X: 1, Y: 0}, Dir: tile.North},
			{Point: tile.Point{X: 2, Y: 1}, Dir: tile.East},
		},
	}
}

func TestTransformIdentity(t *testing.T) {
	p := sampleShrine()
	tr := TransformPrefab(p, 0, false)
	assert.Equal(t, p.Grid, tr.Grid)
}

func TestTransformRotation90SwapsDimensions(t *testing.T) {
	p := &Prefab{Grid: [][]tile.Tile{
		{tile.Floor, tile.Floor},
		{tile.Wall, tile.Wall},
		{tile.Wall, tile.Wall},
	}} // 2 wide, 3 tall
	tr := TransformPrefab(p, 90, false)
	assert.Equal(t, 3, tr.Width)
	assert.Equal(t, 2, tr.Height)
}

func TestTransformRotationRemapsConnectionDirection(t *testing.T) {
	p := sampleShrine()
	tr := TransformPrefab(p, 90, false)
	require.Len(t, tr.Connections, 2)
	assert.Equal(t, tile.East, tr.Connections[0].Dir)
}

func TestTransformMirrorSwapsEastWest(t *testing.T) {
	p := sampleShrine()
	tr := TransformPrefab(p, 0, true)
	require.Len(t, tr.Connections, 2)
	assert.Equal(t, tile.North, tr.Connections[0].Dir)
	assert.Equal(t, tile.West, tr.Connections[1].Dir)
}

func TestRotateGridFourTimesIsIdentity(t *testing.T) {
	g := [][]tile.Tile{
		{tile.Wall, tile.Floor, tile.Wall},
		{tile.Floor, tile.Floor, tile.Wall},
	}
	rotated := RotateGrid(g, 360)
	assert.Equal(t, g, rotated)
}

func TestMirrorGridTwiceIsIdentity(t *testing.T) {
	g := [][]tile.Tile{
		{tile.Wall, tile.Floor, tile.Door},
		{tile.Floor, tile.Floor, tile.Wall},
	}
	once := MirrorGrid(g)
	twice := MirrorGrid(once)
	assert.Equal(t, g, twice)
}

func TestPlacePrefabAtRequiresAllWallFootprint(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	g.Set(5, 5, tile.Floor)
	p := sampleShrine()

	_, ok := PlacePrefabAt(g, p, tile.Point{X: 4, Y: 4}, 0, false)
	assert.False(t, ok)

	g2 := tile.NewGrid(10, 10, tile.Wall)
	placed, ok := PlacePrefabAt(g2, p, tile.Point{X: 3, Y: 3}, 0, false)
	require.True(t, ok)
	assert.Equal(t, tile.Floor, g2.At(4, 4))
	assert.Equal(t, tile.Point{X: 3, Y: 3}, placed.Origin)
}

// S3: prefab placement scenario.
func TestScenarioS3PrefabPlacement(t *testing.T) {
	g := tile.NewGrid(64, 64, tile.Wall)
	shrine := &Prefab{Name: "shrine_room", Grid: makeRoomGrid(7, 7), Weight: 1}
	treasure := &Prefab{Name: "treasure_room", Grid: makeRoomGrid(7, 7), Weight: 1}

	placed := PlacePrefabs(g, Options{
		Prefabs:    []*Prefab{shrine, treasure},
		MaxPrefabs: 2,
		Seed:       seeded(12345),
	})
	require.GreaterOrEqual(t, len(placed), 1)
	for _, pp := range placed {
		assert.LessOrEqual(t, pp.Bounds.X+pp.Bounds.Width, g.Width())
		assert.LessOrEqual(t, pp.Bounds.Y+pp.Bounds.Height, g.Height())
	}
}

func makeRoomGrid(w, h int) [][]tile.Tile {
	grid := make([][]tile.Tile, h)
	for y := range grid {
		grid[y] = make([]tile.Tile, w)
		for x := range grid[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				grid[y][x] = tile.Wall
			} else {
				grid[y][x] = tile.Floor
			}
		}
	}
	return grid
}

func seeded(s uint64) *uint64 { return &s }
