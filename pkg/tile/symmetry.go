package tile

// SymmetryMode selects which mirror/rotation constraint apply_symmetry
// enforces, per spec §6.
type SymmetryMode string

const (
	SymmetryNone          SymmetryMode = "none"
	SymmetryHorizontal    SymmetryMode = "horizontal"
	SymmetryVertical      SymmetryMode = "vertical"
	SymmetryBoth          SymmetryMode = "both"
	SymmetryRotational2   SymmetryMode = "rotational-2"
	SymmetryRotational4   SymmetryMode = "rotational-4"
)

// ApplySymmetry folds the source half (or quadrant) of g onto its mirrored
// counterpart, returning a new grid that satisfies HasSymmetry(result, mode).
// The "source" half is always the top (for vertical folds) or left (for
// horizontal folds) half of the grid; rotational modes use the top-left
// quadrant as the source. For SymmetryRotational4 the result satisfies
// HasSymmetry only when g is square.
func ApplySymmetry(g *Grid, mode SymmetryMode) *Grid {
	out := g.Clone()
	w, h := g.Width(), g.Height()
	switch mode {
	case SymmetryNone:
		return out
	case SymmetryHorizontal:
		for y := 0; y < h; y++ {
			for x := 0; x < w/2; x++ {
				out.Set(w-1-x, y, out.At(x, y))
			}
		}
	case SymmetryVertical:
		for y := 0; y < h/2; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, h-1-y, out.At(x, y))
			}
		}
	case SymmetryBoth:
		for y := 0; y < h/2; y++ {
			for x := 0; x < w/2; x++ {
				t := out.At(x, y)
				out.Set(w-1-x, y, t)
				out.Set(x, h-1-y, t)
				out.Set(w-1-x, h-1-y, t)
			}
		}
	case SymmetryRotational2:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if y*w+x >= (h*w)/2 {
					continue
				}
				out.Set(w-1-x, h-1-y, out.At(x, y))
			}
		}
	case SymmetryRotational4:
		for y := 0; y <= h/2; y++ {
			for x := 0; x <= w/2; x++ {
				t := out.At(x, y)
				out.Set(w-1-y, x, t)
				out.Set(w-1-x, h-1-y, t)
				out.Set(y, h-1-x, t)
			}
		}
	}
	return out
}

// HasSymmetry reports whether g already satisfies mode's constraint exactly.
func HasSymmetry(g *Grid, mode SymmetryMode) bool {
	w, h := g.Width(), g.Height()
	switch mode {
	case SymmetryNone:
		return true
	case SymmetryHorizontal:
		for y := 0; y < h; y++ {
			for x := 0; x < w/2; x++ {
				if g.At(x, y) != g.At(w-1-x, y) {
					return false
				}
			}
		}
		return true
	case SymmetryVertical:
		for y := 0; y < h/2; y++ {
			for x := 0; x < w; x++ {
				if g.At(x, y) != g.At(x, h-1-y) {
					return false
				}
			}
		}
		return true
	case SymmetryBoth:
		return HasSymmetry(g, SymmetryHorizontal) && HasSymmetry(g, SymmetryVertical)
	case SymmetryRotational2:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if g.At(x, y) != g.At(w-1-x, h-1-y) {
					return false
				}
			}
		}
		return true
	case SymmetryRotational4:
		if w != h {
			return false
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if g.At(x, y) != g.At(w-1-y, x) {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}
