// Package modifier implements the post-room in-place transforms of spec
// §4.3: nibble-corners, add-alcoves, round-corners, add-pillars, and
// irregular-edges. Each modifier reads a shape's canonical tile set
// (shape.GetShapeTiles) and mutates the grid directly, matching the
// teacher's habit (pkg/carving/stamper.go) of treating the tile map as the
// single source of truth rather than keeping a parallel mutable shape.
package modifier

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/shape"
	"github.com/dshills/dunegen/pkg/tile"
)

// Modifier is the common signature every post-room transform satisfies.
type Modifier func(g *tile.Grid, s shape.RoomShape, probability float64, r *rng.RNG)

// Apply runs m iff r.Chance(probability) succeeds, matching spec §4.3's
// "apply only if uniform() <= probability" gate shared by every modifier.
func Apply(g *tile.Grid, s shape.RoomShape, probability float64, r *rng.RNG, m Modifier) {
	if r.Chance(probability) {
		m(g, s, probability, r)
	}
}

// tileSet builds a lookup set for membership tests against a shape's tiles.
func tileSet(s shape.RoomShape) map[tile.Point]bool {
	set := make(map[tile.Point]bool, 64)
	for _, p := range shape.GetShapeTiles(s) {
		set[p] = true
	}
	return set
}
