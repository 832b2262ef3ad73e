package shape

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Options configures GenerateRoomShape's variant pool and weights.
type Options struct {
	// AllowedShapes names the variants to consider: "rectangle",
	// "composite:L", "composite:T", "composite:CROSS", "composite:U",
	// "composite:Z", "composite:RANDOM", "template:<name>", "cellular",
	// "polygon:hex", "polygon:oct", "polygon:circle", "polygon:ellipse",
	// "polygon:diamond". Empty means "rectangle" only.
	AllowedShapes []string
	// Weights parallels AllowedShapes; nil means uniform weight.
	Weights []float64
	// MinSizeForNonRect is the minimum bounds area below which only
	// Rectangle is offered, regardless of AllowedShapes.
	MinSizeForNonRect int
}

// GenerateRoomShape filters AllowedShapes to variants that fit bounds,
// performs a weighted pick, and dispatches to the concrete constructor.
// Falls back to Rectangle when nothing else fits.
func GenerateRoomShape(bounds tile.Rect, opts Options, r *rng.RNG) RoomShape {
	if len(opts.AllowedShapes) == 0 {
		return NewRectangle(bounds)
	}
	minArea := opts.MinSizeForNonRect
	if minArea == 0 {
		minArea = 25
	}
	if bounds.Width*bounds.Height < minArea {
		return NewRectangle(bounds)
	}

	candidates := opts.AllowedShapes
	weights := opts.Weights
	if len(weights) != len(candidates) {
		weights = make([]float64, len(candidates))
		for i := range weights {
			weights[i] = 1
		}
	}

	// Filter to variants whose minimum practical size fits bounds.
	var fitCandidates []string
	var fitWeights []float64
	for i, name := range candidates {
		if variantFits(name, bounds) {
			fitCandidates = append(fitCandidates, name)
			fitWeights = append(fitWeights, weights[i])
		}
	}
	if len(fitCandidates) == 0 {
		return NewRectangle(bounds)
	}

	choice := rng.Weighted(r, fitCandidates, fitWeights)
	return buildShape(choice, bounds, r)
}

func variantFits(name string, bounds tile.Rect) bool {
	switch {
	case name == "rectangle":
		return true
	case name == "cellular":
		return bounds.Width >= 5 && bounds.Height >= 5
	case hasPrefix(name, "composite"):
		return bounds.Width >= 4 && bounds.Height >= 4
	case hasPrefix(name, "template"):
		return bounds.Width >= 5 && bounds.Height >= 5
	case hasPrefix(name, "polygon"):
		return bounds.Width >= 5 && bounds.Height >= 5
	default:
		return true
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func buildShape(name string, bounds tile.Rect, r *rng.RNG) RoomShape {
	switch {
	case name == "rectangle":
		return NewRectangle(bounds)
	case name == "cellular":
		return NewCellular(bounds, DefaultCellularOptions(), r)
	case hasPrefix(name, "composite:"):
		return NewComposite(bounds, CompositeVariant(name[len("composite:"):]), r)
	case hasPrefix(name, "template:"):
		return NewTemplate(name[len("template:"):], bounds, r)
	case hasPrefix(name, "polygon:"):
		return NewPolygon(bounds, PolygonVariant(name[len("polygon:"):]))
	default:
		return NewRectangle(bounds)
	}
}
