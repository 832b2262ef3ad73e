// Package shape builds non-rectangular room footprints: RoomShape is a
// tagged variant (Rectangle, Composite, Template, Cellular, Polygon), never
// a class hierarchy — every concrete shape is a small struct, and the
// common operations (Tiles, Center, BBox) are implemented per-type rather
// than inherited, matching the teacher's tagged carving.Room/Connector
// interfaces.
package shape

import "github.com/dshills/dunegen/pkg/tile"

// RoomShape is satisfied by every concrete shape variant below.
type RoomShape interface {
	// Tiles returns every tile the shape occupies, in an unspecified but
	// stable order for a given shape instance.
	Tiles() []tile.Point
	// Center returns the integer centroid of Tiles().
	Center() tile.Point
	// BBox returns the shape's axis-aligned bounding box.
	BBox() tile.Rect
	// FitsIn reports whether the shape's bounding box lies within bounds.
	FitsIn(bounds tile.Rect) bool
}

// GetShapeTiles is the canonical accessor every drawing routine and
// modifier should use instead of a type switch (spec §4.2).
func GetShapeTiles(s RoomShape) []tile.Point { return s.Tiles() }

// GetShapeCenter is the canonical centroid accessor.
func GetShapeCenter(s RoomShape) tile.Point { return s.Center() }

// centroidOf computes the integer centroid of a tile set. Shared by every
// shape variant so centroid math only lives in one place.
func centroidOf(tiles []tile.Point) tile.Point {
	if len(tiles) == 0 {
		return tile.Point{}
	}
	sx, sy := 0, 0
	for _, p := range tiles {
		sx += p.X
		sy += p.Y
	}
	return tile.Point{X: sx / len(tiles), Y: sy / len(tiles)}
}

// bboxOf computes the bounding box of a tile set.
func bboxOf(tiles []tile.Point) tile.Rect {
	if len(tiles) == 0 {
		return tile.Rect{}
	}
	minX, minY := tiles[0].X, tiles[0].Y
	maxX, maxY := tiles[0].X, tiles[0].Y
	for _, p := range tiles[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return tile.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

func fitsIn(bbox, bounds tile.Rect) bool {
	return bbox.X >= bounds.X && bbox.Y >= bounds.Y &&
		bbox.X+bbox.Width <= bounds.X+bounds.Width &&
		bbox.Y+bbox.Height <= bounds.Y+bounds.Height
}
