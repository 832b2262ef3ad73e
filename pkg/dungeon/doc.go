// Package dungeon wires generator, theme, prefab, feature, and validate
// into the single entry point most callers want: give it a size, a theme
// name, and an optional seed, get back a validated tile.Grid with metadata.
package dungeon
