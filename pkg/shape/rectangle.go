package shape

import "github.com/dshills/dunegen/pkg/tile"

// Rectangle is the trivial RoomShape: every tile inside rect.
type Rectangle struct {
	Rect tile.Rect
}

// NewRectangle builds a Rectangle shape from bounds.
func NewRectangle(bounds tile.Rect) *Rectangle { return &Rectangle{Rect: bounds} }

func (r *Rectangle) Tiles() []tile.Point {
	tiles := make([]tile.Point, 0, r.Rect.Width*r.Rect.Height)
	for y := 0; y < r.Rect.Height; y++ {
		for x := 0; x < r.Rect.Width; x++ {
			tiles = append(tiles, tile.Point{X: r.Rect.X + x, Y: r.Rect.Y + y})
		}
	}
	return tiles
}

func (r *Rectangle) Center() tile.Point { return r.Rect.Center() }
func (r *Rectangle) BBox() tile.Rect    { return r.Rect }
func (r *Rectangle) FitsIn(bounds tile.Rect) bool { return fitsIn(r.Rect, bounds) }
