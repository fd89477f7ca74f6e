// Package mesh implements the mesh generator of the surface rendering
// core: it converts a regular 2D grid of scalar samples into a
// camera-facing polygon mesh, sub-sampled against a configurable mesh
// limit, traversed back to front for painter's-algorithm occlusion, and
// colored per cell through a color-map lookup table.
package mesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Grid is the scalar data matrix consumed by the generator: Cols x Rows
// 32-bit float Z samples (possibly NaN) spanning the real-valued X and Y
// ranges. The matrix is owned by a data-set component elsewhere; the
// generator holds only a transient reference during one render or export
// pass.
type Grid interface {
	Cols() int
	Rows() int
	Z(row, col int) float32
	XRange() (x0, x1 float64)
	YRange() (y0, y1 float64)
}

// RangeProvider supplies the color-mapping value range and scale, the
// color-bar contract of the surrounding system. Range may come back in
// either order; the generator reorders it so start < end. The caller is
// responsible for keeping the range strictly positive when Logarithmic
// reports true.
type RangeProvider interface {
	Range() (start, end float64)
	Logarithmic() bool
}

// StaticRange is a fixed RangeProvider.
type StaticRange struct {
	Start, End float64
	Log        bool
}

// Range returns the fixed range.
func (r StaticRange) Range() (float64, float64) { return r.Start, r.End }

// Logarithmic reports whether the range uses a log scale.
func (r StaticRange) Logarithmic() bool { return r.Log }

// ErrGridSize indicates a sample slice whose length does not match the
// declared matrix dimensions.
var ErrGridSize = errors.New("mesh: sample count does not match grid dimensions")

// MatrixGrid is a concrete Grid over a row-major float32 slice.
type MatrixGrid struct {
	cols, rows     int
	z              []float32
	x0, x1, y0, y1 float64
}

// NewMatrixGrid wraps a row-major sample slice (rows x cols entries) with
// its X and Y extents. The slice is referenced, not copied.
func NewMatrixGrid(cols, rows int, z []float32, x0, x1, y0, y1 float64) (*MatrixGrid, error) {
	if len(z) != cols*rows {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrGridSize, len(z), cols, rows)
	}
	return &MatrixGrid{cols: cols, rows: rows, z: z, x0: x0, x1: x1, y0: y0, y1: y1}, nil
}

// Cols returns the number of columns (X samples).
func (g *MatrixGrid) Cols() int { return g.cols }

// Rows returns the number of rows (Y samples).
func (g *MatrixGrid) Rows() int { return g.rows }

// Z returns the sample at (row, col). It may be NaN for missing data.
func (g *MatrixGrid) Z(row, col int) float32 { return g.z[row*g.cols+col] }

// SetZ replaces one sample. The owning generator must be invalidated
// afterwards.
func (g *MatrixGrid) SetZ(row, col int, v float32) { g.z[row*g.cols+col] = v }

// XRange returns the real X extent spanned by the columns.
func (g *MatrixGrid) XRange() (float64, float64) { return g.x0, g.x1 }

// YRange returns the real Y extent spanned by the rows.
func (g *MatrixGrid) YRange() (float64, float64) { return g.y0, g.y1 }

// ZRange scans the matrix for its finite sample extremes, ignoring NaN.
// ok is false when the matrix has no well-defined samples.
func (g *MatrixGrid) ZRange() (z0, z1 float32, ok bool) {
	for _, v := range g.z {
		if math32.IsNaN(v) {
			continue
		}
		if !ok {
			z0, z1, ok = v, v, true
			continue
		}
		z0 = math32.Min(z0, v)
		z1 = math32.Max(z1, v)
	}
	return z0, z1, ok
}
