package mesh

import (
	"image/color"

	"github.com/sruffner/figurecomposer-sub001/colormap"
)

// Mesh limit bounds. The limit caps the cell count along each matrix
// dimension, trading fidelity for polygon count; out-of-bounds values are
// clamped rather than rejected.
const (
	MinMeshLimit     = 25
	MaxMeshLimit     = 500
	DefaultMeshLimit = 100
)

// Option configures a Generator during creation.
//
// Example:
//
//	gen := mesh.New(grid, cam,
//		mesh.WithMeshLimit(200),
//		mesh.WithColorMap(colormap.Jet.LUT(), false, rng),
//		mesh.WithStroke(0.5, color.RGBA{A: 255}))
type Option func(*Generator)

// WithMeshLimit sets the mesh size limit, clamped to
// [MinMeshLimit, MaxMeshLimit].
func WithMeshLimit(n int) Option {
	return func(g *Generator) {
		g.limit = clampLimit(n)
	}
}

// WithFill enables solid filling with the given color. A fully
// transparent color disables filling.
func WithFill(c color.RGBA) Option {
	return func(g *Generator) {
		g.fill = c
		g.colorMapped = false
	}
}

// WithColorMap enables color-mapped filling: each cell is filled with the
// table color of its mean Z value against the provider's current range.
// The reversed flag mirrors the table. A nil lut or provider leaves the
// surface unfilled.
func WithColorMap(lut *colormap.LUT, reversed bool, rng RangeProvider) Option {
	return func(g *Generator) {
		g.lut = lut
		g.lutReversed = reversed
		g.rng = rng
		g.colorMapped = lut != nil && rng != nil
	}
}

// WithStroke enables stroking cell outlines with the given width and
// color. A width of zero disables stroking.
func WithStroke(width float64, c color.RGBA) Option {
	return func(g *Generator) {
		g.strokeWidth = width
		g.strokeColor = c
	}
}

func clampLimit(n int) int {
	if n < MinMeshLimit {
		return MinMeshLimit
	}
	if n > MaxMeshLimit {
		return MaxMeshLimit
	}
	return n
}
