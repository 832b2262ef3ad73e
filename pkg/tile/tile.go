// Package tile defines the dungeon tile enumerations and the 2D grid container
// that every generator, modifier, and simulator in this module reads and writes.
package tile

import "fmt"

// Tile is the baseline dungeon tile enumeration. Values are stable across
// versions; new codes may only be appended at the end, since the numeric
// value is what gets serialized (see pkg/export).
type Tile uint8

const (
	Wall Tile = iota
	Floor
	Door
	SecretDoor
	Corridor
	StairsUp
	StairsDown
	Pit
	Treasure
	Chest
	Trap
	TrapPit
	Water
	DeepWater
	Lava
	Crate
	Barrel
	Bed
	Table
	Chair
	Bookshelf
	Carpet
	Fireplace
	Statue
	Altar
	Rubble
	Collapsed
	FallenColumn
)

// tileNames is indexed by Tile value for String() and JSON metadata.
var tileNames = [...]string{
	"WALL", "FLOOR", "DOOR", "SECRET_DOOR", "CORRIDOR",
	"STAIRS_UP", "STAIRS_DOWN", "PIT",
	"TREASURE", "CHEST", "TRAP", "TRAP_PIT",
	"WATER", "DEEP_WATER", "LAVA",
	"CRATE", "BARREL", "BED", "TABLE", "CHAIR", "BOOKSHELF",
	"CARPET", "FIREPLACE", "STATUE", "ALTAR",
	"RUBBLE", "COLLAPSED", "FALLEN_COLUMN",
}

// String returns the stable uppercase name of the tile, matching the wire
// format used by JSON/TMX metadata.
func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// TileByName resolves a stable tile name back to its code. Used by importers.
func TileByName(name string) (Tile, bool) {
	for i, n := range tileNames {
		if n == name {
			return Tile(i), true
		}
	}
	return 0, false
}

// Walkable is the default walkable set from spec §4.7. Callers that need a
// wider or narrower notion of walkability (e.g. excluding WATER) should copy
// and adjust this map rather than mutate it.
var Walkable = map[Tile]bool{
	Floor:      true,
	Corridor:   true,
	Door:       true,
	SecretDoor: true,
	StairsUp:   true,
	StairsDown: true,
	Treasure:   true,
	Chest:      true,
	Trap:       true,
	TrapPit:    true,
	Water:      true,
	Carpet:     true,
	Rubble:     true,
	Altar:      true,
}

// IsWalkable reports whether t is walkable under the default rule set.
func IsWalkable(t Tile) bool {
	return Walkable[t]
}

// IsHazard reports whether t is one of the non-walkable hazard tiles that
// block movement outright (Pit, Collapsed, Lava, DeepWater).
func IsHazard(t Tile) bool {
	switch t {
	case Pit, Collapsed, Lava, DeepWater:
		return true
	default:
		return false
	}
}

// IsFurniture reports whether t is a tile-sized obstacle that replaces floor.
func IsFurniture(t Tile) bool {
	switch t {
	case Crate, Barrel, Bed, Table, Chair, Bookshelf, Fireplace, Statue, Altar, FallenColumn:
		return true
	default:
		return false
	}
}
