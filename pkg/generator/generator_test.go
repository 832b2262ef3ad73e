package generator

import (
	"testing"

	"github.com/dshills/dunegen/pkg/connectivity"
	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func seeded(s uint64) *uint64 { return &s }

func assertSizeInvariant(t *testing.T, g *tile.Grid, size int) {
	t.Helper()
	assert.Equal(t, size, g.Width())
	assert.Equal(t, size, g.Height())
}

func assertBorderAllWall(t *testing.T, g *tile.Grid, wall tile.Tile) {
	t.Helper()
	for x := 0; x < g.Width(); x++ {
		assert.Equal(t, wall, g.At(x, 0))
		assert.Equal(t, wall, g.At(x, g.Height()-1))
	}
	for y := 0; y < g.Height(); y++ {
		assert.Equal(t, wall, g.At(0, y))
		assert.Equal(t, wall, g.At(g.Width()-1, y))
	}
}

func TestBSPSizeAndBorderInvariant(t *testing.T) {
	g, err := GenerateBSP(32, BSPOptions{Seed: seeded(1)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 32)
	assertBorderAllWall(t, g, tile.Wall)
}

func TestBSPDeterminism(t *testing.T) {
	a, err := GenerateBSP(32, BSPOptions{Seed: seeded(12345)})
	require.NoError(t, err)
	b, err := GenerateBSP(32, BSPOptions{Seed: seeded(12345)})
	require.NoError(t, err)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.Equal(t, a.At(x, y), b.At(x, y))
		}
	}
}

// S1: deterministic BSP scenario.
func TestScenarioS1DeterministicBSP(t *testing.T) {
	g, err := GenerateBSP(32, BSPOptions{Seed: seeded(12345)})
	require.NoError(t, err)

	walkable := g.CountWalkable()
	pct := float64(walkable) / float64(32*32) * 100
	assert.GreaterOrEqual(t, pct, 15.0)
	assert.LessOrEqual(t, pct, 45.0)

	report := connectivity.Analyze(g, connectivity.DefaultMinRoomSize)
	assert.True(t, connectivity.IsFullyConnected(g))
	assert.GreaterOrEqual(t, len(report.Rooms), 3)
	assertBorderAllWall(t, g, tile.Wall)
}

// S2: maze odd-sizing scenario.
func TestScenarioS2MazeOddSizing(t *testing.T) {
	g, err := GenerateMaze(32, MazeOptions{Algorithm: MazeBacktracker, Seed: seeded(1)})
	require.NoError(t, err)
	assert.Equal(t, 31, g.Width())
	assert.Equal(t, 31, g.Height())
	assert.Greater(t, g.Count(tile.Tile(tile.MazePassage)), 0)
	assertBorderAllWall(t, g, tile.Tile(tile.MazeWall))
}

func TestCaveSizeInvariant(t *testing.T) {
	g, err := GenerateCave(40, CaveOptions{Seed: seeded(7)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 40)
	assertBorderAllWall(t, g, tile.Wall)
}

func TestVoronoiIsFullyConnected(t *testing.T) {
	g, err := GenerateVoronoi(40, VoronoiOptions{Seed: seeded(9)})
	require.NoError(t, err)
	assertBorderAllWall(t, g, tile.Wall)
	assert.True(t, connectivity.IsFullyConnected(g))
}

func TestPoissonIsFullyConnected(t *testing.T) {
	g, err := GeneratePoisson(40, PoissonOptions{Seed: seeded(3)})
	require.NoError(t, err)
	assertBorderAllWall(t, g, tile.Wall)
	assert.True(t, connectivity.IsFullyConnected(g))
}

func TestDLASizeInvariant(t *testing.T) {
	g, err := GenerateDLA(30, DLAOptions{Seed: seeded(4)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 30)
	assertBorderAllWall(t, g, tile.Wall)
}

func TestDrunkardVariantsProduceFloor(t *testing.T) {
	for _, v := range []DrunkardVariant{DrunkardSimple, DrunkardWeighted, DrunkardMultiple} {
		g, err := GenerateDrunkard(30, DrunkardOptions{Variant: v, Seed: seeded(5)})
		require.NoError(t, err)
		assert.Greater(t, g.Count(tile.Floor), 0)
		assertBorderAllWall(t, g, tile.Wall)
	}
}

func TestPerlinSizeAndTileDomain(t *testing.T) {
	g, err := GenerateTerrain(30, PerlinOptions{Seed: seeded(11)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 30)
	g.Each(func(x, y int, tt tile.Tile) {
		assert.LessOrEqual(t, tt, tile.Tile(tile.MountainTerrain))
	})
}

func TestAgentSizeInvariant(t *testing.T) {
	g, err := GenerateAgent(30, AgentOptions{Seed: seeded(6)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 30)
	assertBorderAllWall(t, g, tile.Wall)
}

func TestHybridSizeInvariant(t *testing.T) {
	g, err := GenerateHybrid(40, HybridOptions{Seed: seeded(8)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 40)
	assertBorderAllWall(t, g, tile.Wall)
}

func TestWFCUnconstrainedProducesGrid(t *testing.T) {
	g, err := GenerateWFC(16, WFCOptions{Seed: seeded(2)})
	require.NoError(t, err)
	assertSizeInvariant(t, g, 16)
}

func TestWFCWithRulesRespectsAdjacency(t *testing.T) {
	opts := WFCOptions{
		Tiles:   []tile.Tile{tile.Floor, tile.Wall},
		Weights: map[tile.Tile]float64{tile.Floor: 1, tile.Wall: 1},
		Rules: []WFCAdjacencyRule{
			{From: tile.Floor, To: tile.Floor, Dir: tile.North},
			{From: tile.Floor, To: tile.Floor, Dir: tile.South},
			{From: tile.Floor, To: tile.Floor, Dir: tile.East},
			{From: tile.Floor, To: tile.Floor, Dir: tile.West},
			{From: tile.Wall, To: tile.Wall, Dir: tile.North},
			{From: tile.Wall, To: tile.Wall, Dir: tile.South},
			{From: tile.Wall, To: tile.Wall, Dir: tile.East},
			{From: tile.Wall, To: tile.Wall, Dir: tile.West},
		},
		Seed: seeded(42),
	}
	g, err := GenerateWFC(12, opts)
	require.NoError(t, err)
	// every cell is uniform, since rules only ever permit same-tile neighbors
	first := g.At(0, 0)
	g.Each(func(x, y int, tt tile.Tile) {
		assert.Equal(t, first, tt)
	})
}

func TestSizeBelowMinimumRejected(t *testing.T) {
	_, err := GenerateBSP(2, BSPOptions{})
	require.Error(t, err)
	var sizeErr *SizeError
	assert.ErrorAs(t, err, &sizeErr)
}

// rapid property: every generator honors the universal size invariant across
// a spread of seeds and sizes.
func TestGeneratorSizeInvariantProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(MinSize, 60).Draw(rt, "size")
		seed := rapid.Uint64().Draw(rt, "seed")
		g, err := GenerateCave(size, CaveOptions{Seed: &seed})
		require.NoError(rt, err)
		assert.Equal(rt, size, g.Width())
		assert.Equal(rt, size, g.Height())
	})
}
