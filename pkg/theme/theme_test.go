package theme

import (
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(s uint64) *uint64 { return &s }

func TestCanonicalThemesHaveGenerators(t *testing.T) {
	themes := Canonical()
	require.Len(t, themes, 8)
	for name, th := range themes {
		assert.NotEmpty(t, th.Generator, "theme %s missing generator", name)
	}
}

func countTile(g *tile.Grid, want tile.Tile) int {
	n := 0
	g.Each(func(x, y int, t tile.Tile) {
		if t == want {
			n++
		}
	})
	return n
}

// S7: themed generation with crypt produces at least one door, and is
// deterministic for a fixed seed.
func TestScenarioS7ThemedCryptDeterminism(t *testing.T) {
	crypt := Canonical()["crypt"]

	res1, err := GenerateThemedDungeon(48, crypt, seeded(12345), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res1.Grid)

	doors := countTile(res1.Grid, tile.Door) + countTile(res1.Grid, tile.SecretDoor)
	assert.GreaterOrEqual(t, doors, 1)

	res2, err := GenerateThemedDungeon(48, crypt, seeded(12345), nil, nil)
	require.NoError(t, err)

	require.Equal(t, res1.Grid.Width(), res2.Grid.Width())
	require.Equal(t, res1.Grid.Height(), res2.Grid.Height())
	for y := 0; y < res1.Grid.Height(); y++ {
		for x := 0; x < res1.Grid.Width(); x++ {
			assert.Equal(t, res1.Grid.At(x, y), res2.Grid.At(x, y), "mismatch at (%d,%d)", x, y)
		}
	}
}

func TestGenerateThemedDungeonUnknownGeneratorFallsBackToBSP(t *testing.T) {
	th := &Theme{Name: "custom", Generator: "does-not-exist"}
	res, err := GenerateThemedDungeon(40, th, seeded(1), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, res.Grid)
}

func TestOverridesShallowMergePostProcess(t *testing.T) {
	base := Canonical()["crypt"]
	overridden := applyOverrides(*base, &Overrides{
		PostProcess: &PostProcess{DoorChance: 0.9},
	})
	assert.Equal(t, 0.9, overridden.PostProcess.DoorChance)
	assert.Equal(t, base.Generator, overridden.Generator)
}

func TestOverridesNilLeavesThemeUnchanged(t *testing.T) {
	base := Canonical()["cave"]
	out := applyOverrides(*base, nil)
	assert.Equal(t, base.PostProcess, out.PostProcess)
}
