// Package dungeon is the top-level orchestrator: given a Config and an
// optional seed it drives generation, theming, prefab placement, feature
// placement, and structural validation, retrying a bounded number of times,
// into one deterministic Artifact. Grounded on the teacher's
// pkg/dungeon.Generator/DefaultGenerator (Config+seed -> Artifact, a single
// Generate(ctx, cfg) entry point, bounded validation retries) but rebuilt
// around a tile.Grid instead of the teacher's room-graph/spatial-embedding/
// content-population model, which has no equivalent in this module's direct
// tile generation pipeline (see DESIGN.md). Run identity, logging, and
// metrics reuse this module's pkg/diagnostics (a logrus wrapper) and
// pkg/metrics (a prometheus.Collectors bundle) rather than inventing a
// third instrumentation surface.
package dungeon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/dunegen/pkg/diagnostics"
	"github.com/dshills/dunegen/pkg/metrics"
	"github.com/dshills/dunegen/pkg/prefab"
	"github.com/dshills/dunegen/pkg/theme"
	"github.com/dshills/dunegen/pkg/tile"
	"github.com/dshills/dunegen/pkg/validate"
)

// Config describes a single dungeon generation request.
type Config struct {
	Size             int
	ThemeName        string
	Seed             *uint64
	AvailablePrefabs []*prefab.Prefab
	Overrides        *theme.Overrides
	ValidateOptions  validate.Options
	MaxRetries       int // bounded retries against validation failures, default 3
	Diagnostics      diagnostics.Callback
	Metrics          *metrics.Collectors
}

func defaultConfig(cfg Config) Config {
	if cfg.Size <= 0 {
		cfg.Size = 64
	}
	if cfg.ThemeName == "" {
		cfg.ThemeName = "crypt"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return cfg
}

// Artifact is the complete output of a Generate call.
type Artifact struct {
	RunID         string
	Grid          *tile.Grid
	ThemeName     string
	Seed          uint64
	Generator     string
	PrefabsPlaced int
	FeaturesAdded int
	Attempts      int
	Validation    validate.Report
}

// Generate runs theme-driven generation, retrying up to cfg.MaxRetries times
// when structural validation reports an error, and returns the best attempt
// (last attempt if none pass cleanly).
func Generate(ctx context.Context, cfg Config) (*Artifact, error) {
	cfg = defaultConfig(cfg)
	runID := uuid.New().String()

	t, ok := theme.Canonical()[cfg.ThemeName]
	if !ok {
		return nil, fmt.Errorf("generating dungeon %s: unknown theme %q", runID, cfg.ThemeName)
	}

	var best *Artifact
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generating dungeon %s: %w", runID, ctx.Err())
		default:
		}

		start := time.Now()
		result, err := theme.GenerateThemedDungeon(cfg.Size, t, cfg.Seed, cfg.AvailablePrefabs, cfg.Overrides)
		if cfg.Metrics != nil {
			cfg.Metrics.GenerationDuration.WithLabelValues(result.Generator).Observe(time.Since(start).Seconds())
		}
		if err != nil {
			diagnostics.Emit(cfg.Diagnostics, diagnostics.Diagnostic{
				Component: "dungeon.Generate",
				Severity:  diagnostics.SeverityWarning,
				Message:   "generation attempt failed",
				Fields:    map[string]interface{}{"run_id": runID, "attempt": attempt, "error": err.Error()},
			})
			continue
		}

		report := validate.ValidateDungeon(result.Grid, cfg.ValidateOptions)
		art := &Artifact{
			RunID:         runID,
			Grid:          result.Grid,
			ThemeName:     result.ThemeName,
			Seed:          result.Seed,
			Generator:     result.Generator,
			PrefabsPlaced: result.PrefabsPlaced,
			FeaturesAdded: result.FeaturesAdded,
			Attempts:      attempt,
			Validation:    report,
		}
		best = art

		if report.Valid {
			diagnostics.Emit(cfg.Diagnostics, diagnostics.Diagnostic{
				Component: "dungeon.Generate",
				Severity:  diagnostics.SeverityInfo,
				Message:   "generation validated",
				Fields:    map[string]interface{}{"run_id": runID, "attempt": attempt},
			})
			return art, nil
		}
		diagnostics.Emit(cfg.Diagnostics, diagnostics.Diagnostic{
			Component: "dungeon.Generate",
			Severity:  diagnostics.SeverityWarning,
			Message:   "validation reported errors, retrying",
			Fields:    map[string]interface{}{"run_id": runID, "attempt": attempt, "issues": len(report.Issues)},
		})

		// force a distinct seed on retry so repeated attempts don't
		// regenerate the identical failing layout.
		if cfg.Seed != nil {
			next := *cfg.Seed + 1
			cfg.Seed = &next
		}
	}

	if best == nil {
		return nil, fmt.Errorf("generating dungeon %s: all %d attempts failed", runID, cfg.MaxRetries)
	}
	diagnostics.Emit(cfg.Diagnostics, diagnostics.Diagnostic{
		Component: "dungeon.Generate",
		Severity:  diagnostics.SeverityWarning,
		Message:   "exhausted retries without a clean validation",
		Fields:    map[string]interface{}{"run_id": runID, "attempts": best.Attempts},
	})
	return best, nil
}
