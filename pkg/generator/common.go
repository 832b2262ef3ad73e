// Package generator implements the family of grid-building algorithms of
// spec §4.4: BSP, Cave, DLA, Drunkard's walk, Maze, Perlin, Voronoi, WFC,
// Agent, and Poisson-disk, plus the Hybrid entry point.
// Every generator takes a size and an algorithm-specific options struct and
// returns a freshly-owned *tile.Grid.
package generator

import (
	"fmt"

	"github.com/dshills/dunegen/pkg/diagnostics"
)

// MinSize and MaxSize bound every generator's size parameter (spec §4.4,
// §7 "Invalid size").
const (
	MinSize = 4
	MaxSize = 500
)

// SizeError reports that size fell outside [MinSize, MaxSize] for a named
// generator, per spec §7.
type SizeError struct {
	Generator string
	Size      int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: size %d outside [%d, %d]", e.Generator, e.Size, MinSize, MaxSize)
}

// ValidateSize is the shared boundary check every generator calls first.
func ValidateSize(generator string, size int) error {
	if size < MinSize || size > MaxSize {
		return &SizeError{Generator: generator, Size: size}
	}
	return nil
}

// Progress is the nil-safe diagnostic callback threaded through generators
// that may hit an infeasible-options situation (spec §7): on such a
// situation the generator still returns a best-effort grid and emits a
// Diagnostic rather than failing.
type Progress = diagnostics.Callback
