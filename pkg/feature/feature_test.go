package feature

import (
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
)

func seeded(s uint64) *uint64 { return &s }

func openGrid(w, h int) *tile.Grid {
	g := tile.NewGrid(w, h, tile.Wall)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	return g
}

func countTile(g *tile.Grid, t tile.Tile) int {
	n := 0
	g.Each(func(x, y int, got tile.Tile) {
		if got == t {
			n++
		}
	})
	return n
}

func TestPlaceFeaturesGuaranteesStairsWhenRequested(t *testing.T) {
	g := openGrid(20, 20)
	PlaceFeatures(g, Options{GuaranteeStairs: true, Seed: seeded(1)})

	if countTile(g, tile.StairsUp) != 1 {
		t.Fatalf("expected exactly one stairs up, got %d", countTile(g, tile.StairsUp))
	}
	if countTile(g, tile.StairsDown) != 1 {
		t.Fatalf("expected exactly one stairs down, got %d", countTile(g, tile.StairsDown))
	}
}

func TestPlaceFeaturesRespectsMaxCaps(t *testing.T) {
	g := openGrid(30, 30)
	PlaceFeatures(g, Options{
		GuaranteeStairs: true,
		TreasureChance:  1,
		TrapChance:      1,
		MaxTreasures:    2,
		MaxTraps:        3,
		Seed:            seeded(5),
	})

	treasures := countTile(g, tile.Treasure) + countTile(g, tile.Chest)
	traps := countTile(g, tile.Trap) + countTile(g, tile.TrapPit)
	if treasures > 2 {
		t.Fatalf("expected at most 2 treasures, got %d", treasures)
	}
	if traps > 3 {
		t.Fatalf("expected at most 3 traps, got %d", traps)
	}
}

func TestPlaceFeaturesIsDeterministicForSameSeed(t *testing.T) {
	a := openGrid(25, 25)
	b := openGrid(25, 25)
	opts := Options{GuaranteeStairs: true, TreasureChance: 0.5, TrapChance: 0.5, WaterChance: 0.5, Seed: seeded(42)}
	PlaceFeatures(a, opts)
	PlaceFeatures(b, opts)

	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("mismatch at (%d,%d): %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestPlaceFeaturesOnEmptyGridIsNoOp(t *testing.T) {
	g := tile.NewGrid(5, 5, tile.Wall)
	PlaceFeatures(g, Options{GuaranteeStairs: true, Seed: seeded(1)})
	if countTile(g, tile.StairsUp) != 0 {
		t.Fatalf("expected no stairs placed on a walled-off grid")
	}
}
