package shape

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Template is a pre-baked boolean mask, optionally rotated/mirrored and
// nearest-neighbor scaled to a target rectangle, per spec §4.2.
type Template struct {
	Mask         [][]bool // [row][col], mask[y][x]
	TemplateName string
	bbox         tile.Rect
}

// TemplateNames lists the built-in masks, in the order spec.md names them.
var TemplateNames = []string{
	"cross", "diamond", "octagon", "rounded", "circle",
	"irregular1", "irregular2", "irregular3", "H", "chevron", "triangle", "alcoved",
}

// baseMask renders a name at a canonical 11x11 resolution; NewTemplate
// scales the result to the requested target rectangle.
func baseMask(name string) [][]bool {
	const n = 11
	cx, cy := float64(n-1)/2, float64(n-1)/2
	m := make([][]bool, n)
	for y := range m {
		m[y] = make([]bool, n)
	}
	set := func(x, y int, v bool) {
		if x >= 0 && x < n && y >= 0 && y < n {
			m[y][x] = v
		}
	}
	switch name {
	case "cross":
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if absF(float64(x)-cx) <= 1.5 || absF(float64(y)-cy) <= 1.5 {
					set(x, y, true)
				}
			}
		}
	case "diamond":
		r := float64(n-1) / 2
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if absF(float64(x)-cx)+absF(float64(y)-cy) <= r {
					set(x, y, true)
				}
			}
		}
	case "octagon":
		r := float64(n-1) / 2
		cut := r * 0.5
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy := absF(float64(x)-cx), absF(float64(y)-cy)
				if dx <= r && dy <= r && dx+dy <= r+cut {
					set(x, y, true)
				}
			}
		}
	case "rounded":
		r := float64(n-1) / 2
		corner := r * 0.4
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy := absF(float64(x)-cx), absF(float64(y)-cy)
				if dx <= r-corner || dy <= r-corner {
					set(x, y, true)
					continue
				}
				ex, ey := dx-(r-corner), dy-(r-corner)
				if ex*ex+ey*ey <= corner*corner {
					set(x, y, true)
				}
			}
		}
	case "circle":
		r := float64(n-1) / 2
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy := float64(x)-cx, float64(y)-cy
				if dx*dx+dy*dy <= r*r {
					set(x, y, true)
				}
			}
		}
	case "irregular1":
		pattern := []string{
			"00111100000", "01111111000", "11111111100", "11111111100",
			"01111111110", "01111111110", "11111111100", "11111111100",
			"01111111000", "00111100000", "00000000000",
		}
		fillFromPattern(m, pattern)
	case "irregular2":
		pattern := []string{
			"00011111000", "00111111100", "01111111110", "11111111111",
			"11111011111", "11110001111", "11111011111", "11111111111",
			"01111111110", "00111111100", "00011111000",
		}
		fillFromPattern(m, pattern)
	case "irregular3":
		pattern := []string{
			"01100001100", "11110011110", "11111111111", "01111111110",
			"01111111110", "00111111100", "00111111100", "01111111110",
			"01111111110", "11110011110", "01100001100",
		}
		fillFromPattern(m, pattern)
	case "H":
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if x < 3 || x >= n-3 || (y >= n/2-1 && y <= n/2+1) {
					set(x, y, true)
				}
			}
		}
	case "chevron":
		for y := 0; y < n; y++ {
			halfWidth := y
			if halfWidth > n-1-y {
				halfWidth = n - 1 - y
			}
			for x := 0; x < n; x++ {
				if absF(float64(x)-cx) <= float64(halfWidth)+1.5 && absF(float64(x)-cx) >= float64(halfWidth)-1.5 {
					set(x, y, true)
				}
			}
		}
	case "triangle":
		for y := 0; y < n; y++ {
			halfWidth := (float64(y) / float64(n-1)) * cx
			for x := 0; x < n; x++ {
				if absF(float64(x)-cx) <= halfWidth {
					set(x, y, true)
				}
			}
		}
	case "alcoved":
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				set(x, y, true)
			}
		}
		for _, p := range [][2]int{{0, 0}, {n - 1, 0}, {0, n - 1}, {n - 1, n - 1}} {
			set(p[0], p[1], false)
		}
		// carve four alcove pockets on each edge midpoint
		mid := n / 2
		set(mid, 0, true)
		set(0, mid, true)
		set(n-1, mid, true)
		set(mid, n-1, true)
	default:
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				set(x, y, true)
			}
		}
	}
	return m
}

func fillFromPattern(m [][]bool, pattern []string) {
	for y, row := range pattern {
		if y >= len(m) {
			break
		}
		for x, ch := range row {
			if x >= len(m[y]) {
				break
			}
			m[y][x] = ch == '1'
		}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// NewTemplate selects the named mask, optionally rotates by a random
// multiple of 90 degrees and/or mirrors horizontally, then nearest-neighbor
// scales it to target. r may be nil to disable the random rotation/mirror
// pass (used by deterministic tests).
func NewTemplate(name string, target tile.Rect, r *rng.RNG) *Template {
	mask := baseMask(name)
	if r != nil {
		rotations := r.Intn(4)
		for i := 0; i < rotations; i++ {
			mask = rotateMask90(mask)
		}
		if r.Bool() {
			mask = mirrorMaskHorizontal(mask)
		}
	}
	scaled := scaleMask(mask, target.Width, target.Height)
	t := &Template{Mask: scaled, TemplateName: name}
	t.bbox = target
	return t
}

// rotateMask90 rotates a [row][col] mask 90 degrees clockwise:
// new[x][h-1-y] = old[y][x], expressed in row-major mask terms.
func rotateMask90(m [][]bool) [][]bool {
	h := len(m)
	if h == 0 {
		return m
	}
	w := len(m[0])
	out := make([][]bool, w)
	for y := range out {
		out[y] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[x][h-1-y] = m[y][x]
		}
	}
	return out
}

func mirrorMaskHorizontal(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for y, row := range m {
		w := len(row)
		newRow := make([]bool, w)
		for x := 0; x < w; x++ {
			newRow[x] = row[w-1-x]
		}
		out[y] = newRow
	}
	return out
}

// scaleMask nearest-neighbor scales mask to width x height.
func scaleMask(mask [][]bool, width, height int) [][]bool {
	srcH := len(mask)
	if srcH == 0 || width <= 0 || height <= 0 {
		return [][]bool{}
	}
	srcW := len(mask[0])
	out := make([][]bool, height)
	for y := 0; y < height; y++ {
		out[y] = make([]bool, width)
		sy := y * srcH / height
		if sy >= srcH {
			sy = srcH - 1
		}
		for x := 0; x < width; x++ {
			sx := x * srcW / width
			if sx >= srcW {
				sx = srcW - 1
			}
			out[y][x] = mask[sy][sx]
		}
	}
	return out
}

func (t *Template) Tiles() []tile.Point {
	var tiles []tile.Point
	for y, row := range t.Mask {
		for x, v := range row {
			if v {
				tiles = append(tiles, tile.Point{X: t.bbox.X + x, Y: t.bbox.Y + y})
			}
		}
	}
	return tiles
}

func (t *Template) Center() tile.Point          { return centroidOf(t.Tiles()) }
func (t *Template) BBox() tile.Rect             { return t.bbox }
func (t *Template) FitsIn(bounds tile.Rect) bool { return fitsIn(t.bbox, bounds) }
