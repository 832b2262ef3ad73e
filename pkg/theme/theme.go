// Package theme binds a generator, its post-processing passes, a prefab
// config, and a feature mix into a single named preset, loadable from YAML.
// Grounded on the teacher's pkg/themes.ThemePack (YAML-backed preset with
// validation and weighted-entry selection), generalized from its tileset/
// encounter-table model to the tile-grid generator+postprocess+feature
// binding of spec §4.9.
package theme

import (
	"fmt"
	"os"

	"github.com/dshills/dunegen/pkg/feature"
	"github.com/dshills/dunegen/pkg/generator"
	"github.com/dshills/dunegen/pkg/prefab"
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
	"gopkg.in/yaml.v3"
)

// PostProcess configures the fixed-order doors -> secret_doors -> water ->
// rubble -> erode_walls pass.
type PostProcess struct {
	DoorChance       float64 `yaml:"door_chance"`
	SecretDoorChance float64 `yaml:"secret_door_chance"`
	WaterChance      float64 `yaml:"water_chance"`
	RubbleChance     float64 `yaml:"rubble_chance"`
	ErodeIterations  int     `yaml:"erode_iterations"`
}

// PrefabConfig selects which prefabs a theme draws from.
type PrefabConfig struct {
	Categories  []string `yaml:"categories"`
	MaxPrefabs  int      `yaml:"max_prefabs"`
	MinDistance int      `yaml:"min_distance"`
}

// Theme is a named, YAML-loadable generation preset.
type Theme struct {
	Name        string          `yaml:"name"`
	Generator   string          `yaml:"generator"`
	PostProcess PostProcess     `yaml:"post_process"`
	Prefabs     PrefabConfig    `yaml:"prefabs"`
	Features    feature.Options `yaml:"-"`
}

// Pack is a named collection of themes, loadable from a single YAML
// document (a list under `themes:`).
type Pack struct {
	Themes map[string]*Theme
}

// LoadPackFromFile reads a YAML theme pack from path.
func LoadPackFromFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme pack: %w", err)
	}
	var raw struct {
		Themes []*Theme `yaml:"themes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing theme pack YAML: %w", err)
	}
	pack := &Pack{Themes: map[string]*Theme{}}
	for _, t := range raw.Themes {
		pack.Themes[t.Name] = t
	}
	return pack, nil
}

// Canonical returns the eight built-in themes (spec §2/§4.9).
func Canonical() map[string]*Theme {
	return map[string]*Theme{
		"crypt":   {Name: "crypt", Generator: "bsp", PostProcess: PostProcess{DoorChance: 0.3, SecretDoorChance: 0.1, RubbleChance: 0.2}},
		"castle":  {Name: "castle", Generator: "bsp", PostProcess: PostProcess{DoorChance: 0.5}, Prefabs: PrefabConfig{Categories: []string{"throne"}}},
		"cave":    {Name: "cave", Generator: "cave", PostProcess: PostProcess{WaterChance: 0.4, RubbleChance: 0.1}},
		"temple":  {Name: "temple", Generator: "voronoi", PostProcess: PostProcess{RubbleChance: 0.35, ErodeIterations: 1}, Prefabs: PrefabConfig{Categories: []string{"shrine"}}},
		"prison":  {Name: "prison", Generator: "maze", PostProcess: PostProcess{DoorChance: 0.6}, Prefabs: PrefabConfig{Categories: []string{"prison"}}},
		"sewer":   {Name: "sewer", Generator: "drunkard", PostProcess: PostProcess{WaterChance: 0.6, DoorChance: 0.2}},
		"mine":    {Name: "mine", Generator: "dla", PostProcess: PostProcess{RubbleChance: 0.3}},
		"library": {Name: "library", Generator: "bsp", PostProcess: PostProcess{DoorChance: 0.3, RubbleChance: 0.02}, Prefabs: PrefabConfig{Categories: []string{"library"}}},
	}
}

// Overrides shallow-merges into a Theme's PostProcess/Prefabs blocks.
type Overrides struct {
	PostProcess *PostProcess
	Prefabs     *PrefabConfig
}

func applyOverrides(t Theme, o *Overrides) Theme {
	if o == nil {
		return t
	}
	if o.PostProcess != nil {
		t.PostProcess = *o.PostProcess
	}
	if o.Prefabs != nil {
		t.Prefabs = *o.Prefabs
	}
	return t
}

// Result is the output of GenerateThemedDungeon.
type Result struct {
	Grid          *tile.Grid
	ThemeName     string
	Seed          uint64
	Generator     string
	PrefabsPlaced int
	FeaturesAdded int
}

// GenerateThemedDungeon runs theme.Generator to build a base grid, then
// applies the post-process passes in the fixed order doors -> secret_doors
// -> water -> rubble -> erode_walls, then stamps prefabs and places
// features.
func GenerateThemedDungeon(size int, t *Theme, seed *uint64, availablePrefabs []*prefab.Prefab, overrides *Overrides) (*Result, error) {
	merged := applyOverrides(*t, overrides)

	var resolvedSeed uint64
	if seed != nil {
		resolvedSeed = *seed
	} else {
		resolvedSeed = rng.New().Seed()
	}

	g, err := runGenerator(merged.Generator, size, &resolvedSeed)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", merged.Name, err)
	}

	applyPostProcess(g, merged.PostProcess, &resolvedSeed)

	var prefabsPlaced int
	if len(availablePrefabs) > 0 && merged.Prefabs.MaxPrefabs > 0 {
		prefabSeed := resolvedSeed
		placed := prefab.PlacePrefabs(g, prefab.Options{
			Prefabs:     availablePrefabs,
			Categories:  merged.Prefabs.Categories,
			MaxPrefabs:  merged.Prefabs.MaxPrefabs,
			MinDistance: merged.Prefabs.MinDistance,
			Seed:        &prefabSeed,
		})
		prefabsPlaced = len(placed)
	}

	before := countNonWall(g)
	featureOpts := merged.Features
	if featureOpts.Seed == nil {
		featureSeed := resolvedSeed
		featureOpts.Seed = &featureSeed
	}
	feature.PlaceFeatures(g, featureOpts)
	after := countNonWall(g)

	return &Result{
		Grid:          g,
		ThemeName:     merged.Name,
		Seed:          resolvedSeed,
		Generator:     merged.Generator,
		PrefabsPlaced: prefabsPlaced,
		FeaturesAdded: after - before,
	}, nil
}

func countNonWall(g *tile.Grid) int {
	n := 0
	g.Each(func(x, y int, t tile.Tile) {
		if t != tile.Wall {
			n++
		}
	})
	return n
}

func runGenerator(name string, size int, seed *uint64) (*tile.Grid, error) {
	switch name {
	case "bsp":
		return generator.GenerateBSP(size, generator.BSPOptions{Seed: seed})
	case "cave":
		return generator.GenerateCave(size, generator.CaveOptions{Seed: seed})
	case "dla":
		return generator.GenerateDLA(size, generator.DLAOptions{Seed: seed})
	case "drunkard":
		return generator.GenerateDrunkard(size, generator.DrunkardOptions{Seed: seed})
	case "maze":
		return generator.GenerateMaze(size, generator.MazeOptions{Seed: seed})
	case "voronoi":
		return generator.GenerateVoronoi(size, generator.VoronoiOptions{Seed: seed})
	case "poisson":
		return generator.GeneratePoisson(size, generator.PoissonOptions{Seed: seed})
	case "agent":
		return generator.GenerateAgent(size, generator.AgentOptions{Seed: seed})
	case "hybrid":
		return generator.GenerateHybrid(size, generator.HybridOptions{Seed: seed})
	default:
		return generator.GenerateBSP(size, generator.BSPOptions{Seed: seed})
	}
}

// applyPostProcess runs doors -> secret_doors -> water -> rubble ->
// erode_walls, in that fixed order, because each stage reads the current
// tile state left by the previous one.
func applyPostProcess(g *tile.Grid, pp PostProcess, seed *uint64) {
	rng.WithSeed(seed, func(r *rng.RNG) struct{} {
		addDoors(g, pp.DoorChance, tile.Door, r)
		addDoors(g, pp.SecretDoorChance, tile.SecretDoor, r)
		addWaterPatches(g, pp.WaterChance, r)
		addRubble(g, pp.RubbleChance, r)
		for i := 0; i < pp.ErodeIterations; i++ {
			erodeWalls(g, r)
		}
		return struct{}{}
	})
}

func addDoors(g *tile.Grid, chance float64, doorTile tile.Tile, r *rng.RNG) {
	if chance <= 0 {
		return
	}
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) != tile.Corridor {
				continue
			}
			if g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Floor }) == 0 {
				continue
			}
			if r.Chance(chance) {
				g.Set(x, y, doorTile)
			}
		}
	}
}

func addWaterPatches(g *tile.Grid, chance float64, r *rng.RNG) {
	if chance <= 0 {
		return
	}
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) == tile.Floor && r.Chance(chance*0.05) {
				g.Set(x, y, tile.Water)
			}
		}
	}
}

func addRubble(g *tile.Grid, chance float64, r *rng.RNG) {
	if chance <= 0 {
		return
	}
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) == tile.Floor && r.Chance(chance) {
				g.Set(x, y, tile.Rubble)
			}
		}
	}
}

func erodeWalls(g *tile.Grid, r *rng.RNG) {
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if g.At(x, y) != tile.Wall {
				continue
			}
			if g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Floor }) >= 2 && r.Chance(0.15) {
				g.Set(x, y, tile.Collapsed)
			}
		}
	}
}
