package shape

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// CompositeVariant selects the orthogonal arrangement a Composite carves.
type CompositeVariant string

const (
	CompositeL      CompositeVariant = "L"
	CompositeT      CompositeVariant = "T"
	CompositeCross  CompositeVariant = "CROSS"
	CompositeU      CompositeVariant = "U"
	CompositeZ      CompositeVariant = "Z"
	CompositeRandom CompositeVariant = "RANDOM"
)

// Composite is two to four orthogonal rectangles carved with randomized
// orientation, per spec §4.2.
type Composite struct {
	Rects   []tile.Rect
	Variant CompositeVariant
	bbox    tile.Rect
}

// NewComposite builds a composite shape within bounds for the requested
// variant, using r for the orientation and random-offset decisions spec'd
// for each variant.
func NewComposite(bounds tile.Rect, variant CompositeVariant, r *rng.RNG) *Composite {
	armWidth := bounds.Width / 2
	if bounds.Height/2 < armWidth {
		armWidth = bounds.Height / 2
	}
	if armWidth < 1 {
		armWidth = 1
	}
	thickness := 2
	if thickness > armWidth {
		thickness = armWidth
	}

	var rects []tile.Rect
	switch variant {
	case CompositeL:
		rects = lShapeRects(bounds, thickness, r.Intn(4))
	case CompositeT:
		rects = tShapeRects(bounds, thickness, r.Intn(4))
	case CompositeCross:
		rects = crossShapeRects(bounds, thickness)
	case CompositeU:
		rects = uShapeRects(bounds, thickness, r.Intn(4))
	case CompositeZ:
		rects = zShapeRects(bounds, thickness, r.Intn(2))
	default: // CompositeRandom
		n := r.IntRange(2, 4)
		rects = randomOverlapRects(bounds, n, r)
	}

	c := &Composite{Rects: rects, Variant: variant}
	c.bbox = unionAll(rects)
	return c
}

func unionAll(rects []tile.Rect) tile.Rect {
	if len(rects) == 0 {
		return tile.Rect{}
	}
	u := rects[0]
	for _, rc := range rects[1:] {
		u = u.Union(rc)
	}
	return u
}

func lShapeRects(b tile.Rect, thickness, orientation int) []tile.Rect {
	horiz := tile.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: thickness}
	vert := tile.Rect{X: b.X, Y: b.Y, Width: thickness, Height: b.Height}
	switch orientation {
	case 1:
		horiz.Y = b.Y
		vert.X = b.X + b.Width - thickness
	case 2:
		horiz.Y = b.Y + b.Height - thickness
		vert.X = b.X
	case 3:
		horiz.Y = b.Y + b.Height - thickness
		vert.X = b.X + b.Width - thickness
	}
	return []tile.Rect{horiz, vert}
}

func tShapeRects(b tile.Rect, thickness, orientation int) []tile.Rect {
	switch orientation % 2 {
	case 0: // horizontal crossbar, vertical stem
		crossbar := tile.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: thickness}
		stem := tile.Rect{X: b.X + b.Width/2 - thickness/2, Y: b.Y, Width: thickness, Height: b.Height}
		return []tile.Rect{crossbar, stem}
	default: // vertical crossbar, horizontal stem
		crossbar := tile.Rect{X: b.X, Y: b.Y, Width: thickness, Height: b.Height}
		stem := tile.Rect{X: b.X, Y: b.Y + b.Height/2 - thickness/2, Width: b.Width, Height: thickness}
		return []tile.Rect{crossbar, stem}
	}
}

func crossShapeRects(b tile.Rect, thickness int) []tile.Rect {
	horiz := tile.Rect{X: b.X, Y: b.Y + b.Height/2 - thickness/2, Width: b.Width, Height: thickness}
	vert := tile.Rect{X: b.X + b.Width/2 - thickness/2, Y: b.Y, Width: thickness, Height: b.Height}
	return []tile.Rect{horiz, vert}
}

func uShapeRects(b tile.Rect, thickness, orientation int) []tile.Rect {
	left := tile.Rect{X: b.X, Y: b.Y, Width: thickness, Height: b.Height}
	right := tile.Rect{X: b.X + b.Width - thickness, Y: b.Y, Width: thickness, Height: b.Height}
	base := tile.Rect{X: b.X, Y: b.Y + b.Height - thickness, Width: b.Width, Height: thickness}
	switch orientation {
	case 1: // opens left
		return []tile.Rect{
			{X: b.X, Y: b.Y, Width: b.Width, Height: thickness},
			{X: b.X, Y: b.Y, Width: thickness, Height: b.Height},
			{X: b.X + b.Width - thickness, Y: b.Y, Width: thickness, Height: b.Height},
		}
	case 2: // opens up
		return []tile.Rect{base, left, right}
	default:
		return []tile.Rect{left, right, base}
	}
}

func zShapeRects(b tile.Rect, thickness, orientation int) []tile.Rect {
	if orientation == 0 {
		top := tile.Rect{X: b.X, Y: b.Y, Width: b.Width * 2 / 3, Height: thickness}
		mid := tile.Rect{X: b.X + b.Width/3, Y: b.Y, Width: thickness, Height: b.Height}
		bottom := tile.Rect{X: b.X + b.Width/3, Y: b.Y + b.Height - thickness, Width: b.Width * 2 / 3, Height: thickness}
		return []tile.Rect{top, mid, bottom}
	}
	left := tile.Rect{X: b.X, Y: b.Y, Width: thickness, Height: b.Height * 2 / 3}
	mid := tile.Rect{X: b.X, Y: b.Y + b.Height/3, Width: b.Width, Height: thickness}
	right := tile.Rect{X: b.X + b.Width - thickness, Y: b.Y + b.Height/3, Width: thickness, Height: b.Height * 2 / 3}
	return []tile.Rect{left, mid, right}
}

func randomOverlapRects(b tile.Rect, n int, r *rng.RNG) []tile.Rect {
	rects := make([]tile.Rect, 0, n)
	w := maxInt(2, b.Width/2)
	h := maxInt(2, b.Height/2)
	anchor := tile.Rect{X: b.X, Y: b.Y, Width: w, Height: h}
	rects = append(rects, anchor)
	for i := 1; i < n; i++ {
		base := rects[r.Intn(len(rects))]
		ow := r.IntRange(minInt(2, b.Width), maxInt(2, b.Width/2))
		oh := r.IntRange(minInt(2, b.Height), maxInt(2, b.Height/2))
		ox := base.X + r.IntRange(-ow/2, ow/2)
		oy := base.Y + r.IntRange(-oh/2, oh/2)
		ox = clampInt(ox, b.X, b.X+b.Width-ow)
		oy = clampInt(oy, b.Y, b.Y+b.Height-oh)
		rects = append(rects, tile.Rect{X: ox, Y: oy, Width: ow, Height: oh})
	}
	return rects
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Composite) Tiles() []tile.Point {
	seen := make(map[tile.Point]bool)
	var tiles []tile.Point
	for _, rc := range c.Rects {
		for y := 0; y < rc.Height; y++ {
			for x := 0; x < rc.Width; x++ {
				p := tile.Point{X: rc.X + x, Y: rc.Y + y}
				if !seen[p] {
					seen[p] = true
					tiles = append(tiles, p)
				}
			}
		}
	}
	return tiles
}

func (c *Composite) Center() tile.Point          { return centroidOf(c.Tiles()) }
func (c *Composite) BBox() tile.Rect             { return c.bbox }
func (c *Composite) FitsIn(bounds tile.Rect) bool { return fitsIn(c.bbox, bounds) }
