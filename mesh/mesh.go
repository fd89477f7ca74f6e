package mesh

import (
	"context"
	"image/color"
	"math"

	"github.com/chewxy/math32"

	fc "github.com/sruffner/figurecomposer-sub001"
	"github.com/sruffner/figurecomposer-sub001/colormap"
)

// Canvas is the paint context consumed by Render. canvas.Context
// satisfies it; any target with the same path-building and fill/stroke
// surface can substitute.
type Canvas interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	ClearPath()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	FillPreserve()
	Stroke()
}

// cancelInterval is how many cells are drawn between cancellation polls.
const cancelInterval = 64

// Generator converts a Grid into a back-to-front ordered mesh of
// projected quadrilaterals. It is single-threaded: it assumes exclusive
// access to its grid and projector for the duration of one
// Update/Render/Export call chain.
//
// Derived state (sub-sampling intervals, traversal direction, bounds) is
// cached after Update and reused until Invalidate is called. The owner
// must invalidate whenever the grid data, the mesh limit, the
// color-mapping configuration or range, or the projector's camera
// parameters change; stale cached state is never detected implicitly.
type Generator struct {
	grid Grid
	proj Projector

	limit       int
	fill        color.RGBA
	colorMapped bool
	lut         *colormap.LUT
	lutReversed bool
	rng         RangeProvider
	strokeWidth float64
	strokeColor color.RGBA

	// Transient state, rebuilt by Update.
	ready        bool
	empty        bool
	xIntv, yIntv int
	invX, invY   bool
	xStrips      bool
	rangeStart   float64
	rangeEnd     float64
	rangeLog     bool
	bounds       fc.Rect

	// verts holds the current cell's four projected corners, reused
	// across iterations to keep the hot loop allocation-free. Contents
	// are only valid until the next cell is visited.
	verts [4]fc.Point
}

// New creates a generator over a grid and projector. With no options the
// surface is solid-filled black with no stroke.
func New(grid Grid, proj Projector, opts ...Option) *Generator {
	g := &Generator{
		grid:  grid,
		proj:  proj,
		limit: DefaultMeshLimit,
		fill:  color.RGBA{A: 0xFF},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invalidate discards all cached derived state. The next query or render
// re-runs Update.
func (g *Generator) Invalidate() {
	g.ready = false
}

// Reset is an alias for Invalidate, returning the generator to its
// uninitialized state.
func (g *Generator) Reset() { g.Invalidate() }

// SetGrid swaps the data matrix and invalidates.
func (g *Generator) SetGrid(grid Grid) {
	g.grid = grid
	g.Invalidate()
}

// SetProjector swaps the projection service and invalidates.
func (g *Generator) SetProjector(p Projector) {
	g.proj = p
	g.Invalidate()
}

// SetMeshLimit updates the mesh size limit (clamped) and invalidates.
func (g *Generator) SetMeshLimit(n int) {
	g.limit = clampLimit(n)
	g.Invalidate()
}

// MeshLimit returns the current (clamped) mesh size limit.
func (g *Generator) MeshLimit() int { return g.limit }

// SetFill switches to solid filling and invalidates.
func (g *Generator) SetFill(c color.RGBA) {
	WithFill(c)(g)
	g.Invalidate()
}

// SetColorMap switches to color-mapped filling and invalidates.
func (g *Generator) SetColorMap(lut *colormap.LUT, reversed bool, rng RangeProvider) {
	WithColorMap(lut, reversed, rng)(g)
	g.Invalidate()
}

// SetStroke updates the stroke configuration and invalidates.
func (g *Generator) SetStroke(width float64, c color.RGBA) {
	WithStroke(width, c)(g)
	g.Invalidate()
}

// filled reports whether cells get a fill at all.
func (g *Generator) filled() bool {
	return g.colorMapped || g.fill.A > 0
}

// stroked reports whether cell outlines get a stroke.
func (g *Generator) stroked() bool {
	return g.strokeWidth > 0 && g.strokeColor.A > 0
}

// Update rebuilds the transient mesh state: sub-sampling intervals, strip
// orientation, traversal direction, color range and screen-space bounds.
// It is a no-op while the generator is Ready; callers normally rely on
// the lazy Update performed by queries and Render.
//
// The mesh degrades to empty (nothing drawn, empty bounds) for a
// degenerate X or Y extent, fewer than 2 columns or rows, or a surface
// that is neither filled nor stroked.
func (g *Generator) Update() {
	if g.ready {
		return
	}
	g.ready = true
	g.empty = true
	g.bounds = fc.Rect{}

	cols, rows := g.grid.Cols(), g.grid.Rows()
	x0, x1 := g.grid.XRange()
	y0, y1 := g.grid.YRange()
	if x0 == x1 || y0 == y1 || cols <= 1 || rows <= 1 {
		fc.Logger().Warn("mesh: degenerate surface",
			"cols", cols, "rows", rows, "x0", x0, "x1", x1, "y0", y0, "y1", y1)
		return
	}
	if !g.filled() && !g.stroked() {
		return
	}

	g.xIntv = interval(cols, g.limit)
	g.yIntv = interval(rows, g.limit)

	// Iterate primarily over X when the camera is within 15 degrees of
	// 0 or 180, where the X axis sits nearly edge-on to the viewer;
	// otherwise iterate primarily over Y.
	rot := math.Mod(math.Abs(g.proj.RotationAngle()), 360)
	g.xStrips = rot <= 15 || rot >= 345 || (rot >= 165 && rot <= 195)

	// Walk each axis so the first cells visited sit on the projector's
	// back side; the nearest cells then paint last.
	g.invX = math.Abs(x0-g.proj.BackX()) > math.Abs(x1-g.proj.BackX())
	g.invY = math.Abs(y0-g.proj.BackY()) > math.Abs(y1-g.proj.BackY())

	if g.colorMapped {
		start, end := g.rng.Range()
		if start > end {
			start, end = end, start
		}
		g.rangeStart, g.rangeEnd = start, end
		g.rangeLog = g.rng.Logarithmic()
	}

	g.empty = false
	g.forEachCell(func(float64) bool {
		for _, v := range g.verts {
			g.bounds.ExpandTo(v)
		}
		return true
	})

	fc.Logger().Debug("mesh: updated",
		"cols", cols, "rows", rows, "xIntv", g.xIntv, "yIntv", g.yIntv,
		"invX", g.invX, "invY", g.invY, "xStrips", g.xStrips)
}

// interval returns the smallest k >= 1 with n/k <= limit (integer
// division, matching the observed sub-sampling behavior).
func interval(n, limit int) int {
	k := 1
	for n/k > limit {
		k++
	}
	return k
}

// XInterval returns the column sub-sampling interval, updating first if
// necessary.
func (g *Generator) XInterval() int {
	g.Update()
	return g.xIntv
}

// YInterval returns the row sub-sampling interval, updating first if
// necessary.
func (g *Generator) YInterval() int {
	g.Update()
	return g.yIntv
}

// Bounds returns the screen-space bounding box over all fully projected
// cells, updating first if necessary. The box is empty for a degraded
// mesh or when every cell is a hole.
func (g *Generator) Bounds() fc.Rect {
	g.Update()
	return g.bounds
}

// CellCount returns the number of non-hole cells, updating first if
// necessary.
func (g *Generator) CellCount() int {
	g.Update()
	n := 0
	if !g.empty {
		g.forEachCell(func(float64) bool { n++; return true })
	}
	return n
}

// forEachCell runs the back-to-front traversal, invoking visit with the
// mean Z of each non-hole cell after loading its projected corners into
// g.verts. Hole cells are skipped silently. It returns false if visit
// stopped the traversal early.
func (g *Generator) forEachCell(visit func(avgZ float64) bool) bool {
	cols, rows := g.grid.Cols(), g.grid.Rows()
	if g.xStrips {
		for c := firstIndex(cols, g.invX); inRange(c, cols, g.invX); c = nextIndex(c, g.xIntv, g.invX) {
			for r := firstIndex(rows, g.invY); inRange(r, rows, g.invY); r = nextIndex(r, g.yIntv, g.invY) {
				if !g.visitCell(c, r, visit) {
					return false
				}
			}
		}
		return true
	}
	for r := firstIndex(rows, g.invY); inRange(r, rows, g.invY); r = nextIndex(r, g.yIntv, g.invY) {
		for c := firstIndex(cols, g.invX); inRange(c, cols, g.invX); c = nextIndex(c, g.xIntv, g.invX) {
			if !g.visitCell(c, r, visit) {
				return false
			}
		}
	}
	return true
}

// firstIndex, inRange and nextIndex walk cell origins along one axis in
// the current traversal direction.
func firstIndex(n int, inv bool) int {
	if inv {
		return n - 1
	}
	return 0
}

func inRange(i, n int, inv bool) bool {
	if inv {
		return i > 0
	}
	return i < n-1
}

func nextIndex(i, intv int, inv bool) int {
	if inv {
		return i - intv
	}
	return i + intv
}

// opposite steps intv samples from origin i in the traversal direction,
// clamped to the matrix bounds.
func opposite(i, intv, n int, inv bool) int {
	if inv {
		if i-intv < 0 {
			return 0
		}
		return i - intv
	}
	if i+intv > n-1 {
		return n - 1
	}
	return i + intv
}

// visitCell computes one cell's projected corners and mean Z, invoking
// visit unless the cell is a hole. A cell is a hole when its opposite
// corner collapses onto the origin, any of its four corner projections
// is undefined, or its Z average has no well-defined samples. A cell
// with a well-defined average but an undefined corner is never rendered
// partially.
func (g *Generator) visitCell(c, r int, visit func(avgZ float64) bool) bool {
	cols, rows := g.grid.Cols(), g.grid.Rows()
	c2 := opposite(c, g.xIntv, cols, g.invX)
	r2 := opposite(r, g.yIntv, rows, g.invY)
	if c == c2 || r == r2 {
		return true
	}

	if !g.projectCorner(0, r, c) ||
		!g.projectCorner(1, r, c2) ||
		!g.projectCorner(2, r2, c2) ||
		!g.projectCorner(3, r2, c) {
		return true
	}

	avg, ok := g.cellZ(c, c2, r, r2)
	if !ok {
		return true
	}
	return visit(avg)
}

// projectCorner projects matrix sample (row, col) into g.verts[slot],
// reporting whether the projection is well-defined.
func (g *Generator) projectCorner(slot, row, col int) bool {
	z := g.grid.Z(row, col)
	if math32.IsNaN(z) {
		return false
	}
	p, ok := g.proj.Project(g.worldX(col), g.worldY(row), float64(z))
	if !ok || !p.IsDefined() {
		return false
	}
	g.verts[slot] = p
	return true
}

// worldX converts a column index to its real X coordinate on the grid's
// linear scale.
func (g *Generator) worldX(col int) float64 {
	x0, x1 := g.grid.XRange()
	return x0 + (x1-x0)*float64(col)/float64(g.grid.Cols()-1)
}

// worldY converts a row index to its real Y coordinate.
func (g *Generator) worldY(row int) float64 {
	y0, y1 := g.grid.YRange()
	return y0 + (y1-y0)*float64(row)/float64(g.grid.Rows()-1)
}

// cellZ computes the cell's representative Z. When sub-sampling, it is
// the mean of all well-defined samples in the inclusive index block
// between the origin and opposite corners — boundary cells clamped at the
// matrix edge average fewer samples than a full block, matching the
// observed behavior. Without sub-sampling it is the mean of the four
// corner samples.
func (g *Generator) cellZ(c, c2, r, r2 int) (float64, bool) {
	if g.xIntv == 1 && g.yIntv == 1 {
		sum := g.grid.Z(r, c) + g.grid.Z(r, c2) + g.grid.Z(r2, c2) + g.grid.Z(r2, c)
		if math32.IsNaN(sum) {
			return 0, false
		}
		return float64(sum) / 4, true
	}

	if c > c2 {
		c, c2 = c2, c
	}
	if r > r2 {
		r, r2 = r2, r
	}
	var sum float64
	count := 0
	for row := r; row <= r2; row++ {
		for col := c; col <= c2; col++ {
			z := g.grid.Z(row, col)
			if math32.IsNaN(z) {
				continue
			}
			sum += float64(z)
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// cellColor resolves a cell's fill color from its mean Z.
func (g *Generator) cellColor(avgZ float64) color.RGBA {
	if !g.colorMapped {
		return g.fill
	}
	return g.lut.MapColor(avgZ, g.rangeStart, g.rangeEnd, g.rangeLog, g.lutReversed).Color()
}

// Render draws every non-hole cell back to front onto the canvas,
// filling (solid or color-mapped) and stroking per configuration. The
// context is polled periodically; on cancellation rendering stops early
// and Render reports completed=false, leaving partial output on the
// canvas for the caller's next pass to repaint.
func (g *Generator) Render(ctx context.Context, cv Canvas) (completed bool) {
	g.Update()
	if g.empty {
		return true
	}
	fill, stroke := g.filled(), g.stroked()
	n := 0
	return g.forEachCell(func(avgZ float64) bool {
		n++
		if n%cancelInterval == 0 && ctx.Err() != nil {
			return false
		}
		cv.ClearPath()
		cv.MoveTo(g.verts[0].X, g.verts[0].Y)
		cv.LineTo(g.verts[1].X, g.verts[1].Y)
		cv.LineTo(g.verts[2].X, g.verts[2].Y)
		cv.LineTo(g.verts[3].X, g.verts[3].Y)
		cv.ClosePath()
		if fill {
			cv.SetColor(g.cellColor(avgZ))
			cv.FillPreserve()
		}
		if stroke {
			cv.SetColor(g.strokeColor)
			cv.SetLineWidth(g.strokeWidth)
			cv.Stroke()
		} else {
			cv.ClearPath()
		}
		return true
	})
}
