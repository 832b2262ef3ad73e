package multilevel

import (
	"fmt"
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
)

func seeded(s uint64) *uint64 { return &s }

func openFloorGenerator(w, h int) func(seed *uint64) (*tile.Grid, error) {
	return func(seed *uint64) (*tile.Grid, error) {
		g := tile.NewGrid(w, h, tile.Wall)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				g.Set(x, y, tile.Floor)
			}
		}
		return g, nil
	}
}

func failingGenerator(seed *uint64) (*tile.Grid, error) {
	return nil, fmt.Errorf("boom")
}

func TestGenerateMultiLevelBuildsOneGridPerSpec(t *testing.T) {
	specs := []LevelSpec{
		{Name: "one", Generator: openFloorGenerator(20, 20)},
		{Name: "two", Generator: openFloorGenerator(20, 20)},
		{Name: "three", Generator: openFloorGenerator(20, 20)},
	}
	res, err := GenerateMultiLevel(specs, Options{Seed: seeded(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(res.Levels))
	}
}

func TestGenerateMultiLevelThreadsStairsBetweenConsecutiveLevels(t *testing.T) {
	specs := []LevelSpec{
		{Name: "upper", Generator: openFloorGenerator(30, 30)},
		{Name: "lower", Generator: openFloorGenerator(30, 30)},
	}
	res, err := GenerateMultiLevel(specs, Options{StairsPerConnection: 2, MinStairDistance: 4, Seed: seeded(9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Connections) == 0 {
		t.Fatalf("expected at least one stair connection")
	}
	for _, c := range res.Connections {
		if res.Levels[c.UpperLevel].At(c.UpperPos.X, c.UpperPos.Y) != tile.StairsDown {
			t.Fatalf("expected stairs down at upper connection point")
		}
		if res.Levels[c.LowerLevel].At(c.LowerPos.X, c.LowerPos.Y) != tile.StairsUp {
			t.Fatalf("expected stairs up at lower connection point")
		}
	}
}

func TestGenerateMultiLevelPropagatesGeneratorError(t *testing.T) {
	specs := []LevelSpec{{Name: "broken", Generator: failingGenerator}}
	_, err := GenerateMultiLevel(specs, Options{Seed: seeded(1)})
	if err == nil {
		t.Fatalf("expected an error from a failing generator")
	}
}

func TestGenerateMultiLevelIsDeterministicForSameSeed(t *testing.T) {
	specs := func() []LevelSpec {
		return []LevelSpec{
			{Name: "a", Generator: openFloorGenerator(25, 25)},
			{Name: "b", Generator: openFloorGenerator(25, 25)},
		}
	}
	opts := Options{StairsPerConnection: 2, MinStairDistance: 4, Seed: seeded(77)}
	a, err := GenerateMultiLevel(specs(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateMultiLevel(specs(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Connections) != len(b.Connections) {
		t.Fatalf("expected same connection count, got %d vs %d", len(a.Connections), len(b.Connections))
	}
	for i := range a.Connections {
		if a.Connections[i] != b.Connections[i] {
			t.Fatalf("connection %d differs: %+v vs %+v", i, a.Connections[i], b.Connections[i])
		}
	}
}
