package shape

import (
	"math"
	"sort"

	"github.com/dshills/dunegen/pkg/tile"
)

// PolygonVariant selects vertex count and aspect for Polygon.
type PolygonVariant string

const (
	PolygonHex     PolygonVariant = "hex"
	PolygonOct     PolygonVariant = "oct"
	PolygonCircle  PolygonVariant = "circle"
	PolygonEllipse PolygonVariant = "ellipse"
	PolygonDiamond PolygonVariant = "diamond"
)

var polygonSides = map[PolygonVariant]int{
	PolygonHex:     6,
	PolygonOct:     8,
	PolygonCircle:  16,
	PolygonEllipse: 16,
	PolygonDiamond: 4,
}

// Polygon is rasterized by scanline fill from vertices placed on an ellipse
// inscribed in the bounding rectangle (spec §4.2).
type Polygon struct {
	Vertices []tile.Point
	Variant  PolygonVariant
	tiles    []tile.Point
	bbox     tile.Rect
}

// NewPolygon builds a Polygon shape within bounds.
func NewPolygon(bounds tile.Rect, variant PolygonVariant) *Polygon {
	sides, ok := polygonSides[variant]
	if !ok {
		sides = 16
	}
	cx := float64(bounds.X) + float64(bounds.Width)/2
	cy := float64(bounds.Y) + float64(bounds.Height)/2
	rx := float64(bounds.Width) / 2
	ry := float64(bounds.Height) / 2

	verts := make([]tile.Point, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		vx := cx + rx*math.Cos(theta)
		vy := cy + ry*math.Sin(theta)
		verts[i] = tile.Point{X: int(math.Round(vx)), Y: int(math.Round(vy))}
	}

	p := &Polygon{Vertices: verts, Variant: variant, bbox: bounds}
	p.tiles = rasterizePolygon(verts, bounds)
	return p
}

// rasterizePolygon scanline-fills the polygon described by verts, clipped
// to bounds: for each integer y, collect x-intersections with edges where
// one endpoint is <= y and the other > y, sort, and fill between
// successive pairs.
func rasterizePolygon(verts []tile.Point, bounds tile.Rect) []tile.Point {
	var tiles []tile.Point
	n := len(verts)
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		var xs []float64
		for i := 0; i < n; i++ {
			a := verts[i]
			b := verts[(i+1)%n]
			ay, by := float64(a.Y), float64(b.Y)
			fy := float64(y)
			if (ay <= fy && by > fy) || (by <= fy && ay > fy) {
				t := (fy - ay) / (by - ay)
				x := float64(a.X) + t*float64(b.X-a.X)
				xs = append(xs, x)
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			startX := int(math.Ceil(xs[i]))
			endX := int(math.Floor(xs[i+1]))
			for x := startX; x <= endX; x++ {
				if x >= bounds.X && x < bounds.X+bounds.Width {
					tiles = append(tiles, tile.Point{X: x, Y: y})
				}
			}
		}
	}
	return tiles
}

func (p *Polygon) Tiles() []tile.Point          { return p.tiles }
func (p *Polygon) Center() tile.Point           { return centroidOf(p.tiles) }
func (p *Polygon) BBox() tile.Rect              { return p.bbox }
func (p *Polygon) FitsIn(bounds tile.Rect) bool { return fitsIn(p.bbox, bounds) }
