package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/dunegen/pkg/dungeon"
	"github.com/dshills/dunegen/pkg/export"
	"github.com/dshills/dunegen/pkg/sim"
)

const version = "1.0.0"

var (
	themeFlag   = flag.String("theme", "crypt", "Theme name (crypt, castle, cave, temple, prison, sewer, mine, library)")
	sizeFlag    = flag.Int("size", 64, "Grid width/height in tiles")
	outputDir   = flag.String("output", ".", "Output directory for generated files")
	format      = flag.String("format", "json", "Export format: json, csv, tmx, or all")
	seedFlag    = flag.Uint64("seed", 0, "Seed for deterministic generation (0 = random)")
	simulate    = flag.Bool("simulate", false, "Run a tactical combat simulation on the generated dungeon")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
	versionFlag = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dungeongen version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	validFormats := map[string]bool{"json": true, "csv": true, "tmx": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, csv, tmx, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var seedPtr *uint64
	if *seedFlag != 0 {
		seedPtr = seedFlag
	}

	if *verbose {
		fmt.Printf("Generating %q theme, size %d, seed=%v\n", *themeFlag, *sizeFlag, seedFlag)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	artifact, err := dungeon.Generate(ctx, dungeon.Config{
		Size:      *sizeFlag,
		ThemeName: *themeFlag,
		Seed:      seedPtr,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Generation completed in %v (attempts=%d)\n", elapsed, artifact.Attempts)
		printStats(artifact)
	}

	if *simulate {
		if err := runSimulation(artifact); err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
	}

	baseName := fmt.Sprintf("dungeon_%d", artifact.Seed)
	if *format == "json" || *format == "all" {
		if err := exportJSON(artifact, baseName); err != nil {
			return err
		}
	}
	if *format == "csv" || *format == "all" {
		if err := exportCSV(artifact, baseName); err != nil {
			return err
		}
	}
	if *format == "tmx" || *format == "all" {
		if err := exportTMX(artifact, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated dungeon (seed=%d) in %v\n", artifact.Seed, elapsed)
	return nil
}

func runSimulation(artifact *dungeon.Artifact) error {
	seed := artifact.Seed
	state, err := sim.Simulate(artifact.Grid,
		sim.SpawnOptions{UnitsPerFaction: 4, UnitTypes: sim.DefaultUnitTypes, OpposingSides: true, Seed: &seed},
		sim.TurnOptions{RandomizeTurnOrder: true, Seed: &seed},
		200)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("Simulation complete after %d turns, winner=%v, events=%d\n", state.Turn, state.Winner, len(state.Events))
	}
	return nil
}

func exportJSON(artifact *dungeon.Artifact, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	data, err := export.ExportJSON(artifact.Grid, export.Metadata{
		Name:      baseName,
		Generator: artifact.Generator,
		Seed:      &artifact.Seed,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("exporting JSON: %w", err)
	}
	return writeOutput(filename, data)
}

func exportCSV(artifact *dungeon.Artifact, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".csv")
	data, err := export.ExportCSV(artifact.Grid)
	if err != nil {
		return fmt.Errorf("exporting CSV: %w", err)
	}
	return writeOutput(filename, data)
}

func exportTMX(artifact *dungeon.Artifact, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".tmx")
	data, err := export.ExportTMX(artifact.Grid)
	if err != nil {
		return fmt.Errorf("exporting TMX: %w", err)
	}
	return writeOutput(filename, data)
}

func writeOutput(filename string, data []byte) error {
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if *verbose {
		fmt.Printf("  Wrote %d bytes to %s\n", len(data), filename)
	}
	return nil
}

func printStats(artifact *dungeon.Artifact) {
	fmt.Println("\nDungeon Statistics:")
	fmt.Printf("  Generator: %s\n", artifact.Generator)
	fmt.Printf("  Prefabs placed: %d\n", artifact.PrefabsPlaced)
	fmt.Printf("  Features added: %d\n", artifact.FeaturesAdded)
	fmt.Printf("  Walkable tiles: %d\n", artifact.Validation.Stats.WalkableTiles)
	fmt.Printf("  Rooms: %d\n", artifact.Validation.Stats.RoomCount)
	fmt.Printf("\nValidation: %s\n", validationStatus(artifact.Validation.Valid))
	for _, issue := range artifact.Validation.Issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
	}
}

func validationStatus(valid bool) string {
	if valid {
		return "PASSED"
	}
	return "FAILED"
}

func printHelp() {
	fmt.Printf("dungeongen version %s\n\n", version)
	fmt.Println("A command-line tool for generating procedural dungeons.")
	fmt.Println("\nUsage:")
	fmt.Println("  dungeongen [options]")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -theme string")
	fmt.Println("        Theme name (default: crypt)")
	fmt.Println("  -size int")
	fmt.Println("        Grid width/height in tiles (default: 64)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, csv, tmx, or all (default: json)")
	fmt.Println("  -seed uint")
	fmt.Println("        Seed for deterministic generation (0 = random)")
	fmt.Println("  -simulate")
	fmt.Println("        Run a tactical combat simulation on the generated dungeon")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  dungeongen -theme crypt -seed 12345 -format all -output ./out")
	fmt.Println("  dungeongen -theme cave -simulate -verbose")
}
