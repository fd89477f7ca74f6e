// Package canvas provides the software paint target for mesh rendering:
// an immediate-mode drawing context over an RGBA pixmap with path building
// and fill/stroke operations, rasterized through golang.org/x/image/vector.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	fc "github.com/sruffner/figurecomposer-sub001"
)

// subpath is one MoveTo-initiated polyline, possibly closed.
type subpath struct {
	pts    []fc.Point
	closed bool
}

// Context is a drawing context over an RGBA pixmap.
// It maintains a current path, color and line width. It is not safe for
// concurrent use.
type Context struct {
	width  int
	height int
	img    *image.RGBA
	ras    *vector.Rasterizer

	path      []subpath
	col       color.RGBA
	lineWidth float64
}

// NewContext creates a drawing context with the given dimensions.
// The pixmap starts fully transparent; use Clear to lay down a background.
func NewContext(width, height int) *Context {
	return &Context{
		width:     width,
		height:    height,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		ras:       vector.NewRasterizer(width, height),
		col:       color.RGBA{A: 0xFF},
		lineWidth: 1,
	}
}

// Width returns the width of the context.
func (c *Context) Width() int { return c.width }

// Height returns the height of the context.
func (c *Context) Height() int { return c.height }

// Image returns the backing pixmap.
func (c *Context) Image() *image.RGBA { return c.img }

// Clear fills the whole pixmap with a color, discarding prior content.
func (c *Context) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// SetColor sets the color used by subsequent Fill and Stroke calls.
func (c *Context) SetColor(col color.Color) {
	r, g, b, a := col.RGBA()
	c.col = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// SetLineWidth sets the stroke width in pixels.
func (c *Context) SetLineWidth(w float64) {
	c.lineWidth = w
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	c.path = append(c.path, subpath{pts: []fc.Point{fc.Pt(x, y)}})
}

// LineTo extends the current subpath with a line to (x, y).
// Without a preceding MoveTo it behaves as MoveTo.
func (c *Context) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	sp := &c.path[len(c.path)-1]
	sp.pts = append(sp.pts, fc.Pt(x, y))
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	if len(c.path) > 0 {
		c.path[len(c.path)-1].closed = true
	}
}

// ClearPath discards the current path.
func (c *Context) ClearPath() {
	c.path = c.path[:0]
}

// Fill fills the current path with the current color and clears the path.
func (c *Context) Fill() {
	c.FillPreserve()
	c.ClearPath()
}

// FillPreserve fills the current path with the current color, keeping the
// path for a subsequent Stroke.
func (c *Context) FillPreserve() {
	if len(c.path) == 0 || c.col.A == 0 {
		return
	}
	c.ras.Reset(c.width, c.height)
	c.ras.DrawOp = draw.Over
	for _, sp := range c.path {
		if len(sp.pts) < 2 {
			continue
		}
		c.ras.MoveTo(float32(sp.pts[0].X), float32(sp.pts[0].Y))
		for _, p := range sp.pts[1:] {
			c.ras.LineTo(float32(p.X), float32(p.Y))
		}
		c.ras.ClosePath()
	}
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(c.col), image.Point{})
}

// Stroke strokes the current path with the current color and line width,
// then clears the path.
func (c *Context) Stroke() {
	c.StrokePreserve()
	c.ClearPath()
}

// StrokePreserve strokes the current path, keeping the path.
// Strokes are rendered as width-w quads per segment with butt caps, which
// is sufficient for the thin mesh wireframes drawn here.
func (c *Context) StrokePreserve() {
	if len(c.path) == 0 || c.col.A == 0 || c.lineWidth <= 0 {
		return
	}
	c.ras.Reset(c.width, c.height)
	c.ras.DrawOp = draw.Over
	for _, sp := range c.path {
		n := len(sp.pts)
		for i := 1; i < n; i++ {
			c.strokeSegment(sp.pts[i-1], sp.pts[i])
		}
		if sp.closed && n > 2 {
			c.strokeSegment(sp.pts[n-1], sp.pts[0])
		}
	}
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(c.col), image.Point{})
}

// strokeSegment adds the quad covering one stroked segment to the
// rasterizer.
func (c *Context) strokeSegment(p, q fc.Point) {
	dx, dy := q.X-p.X, q.Y-p.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := c.lineWidth / 2
	nx, ny := -dy/length*half, dx/length*half
	c.ras.MoveTo(float32(p.X+nx), float32(p.Y+ny))
	c.ras.LineTo(float32(q.X+nx), float32(q.Y+ny))
	c.ras.LineTo(float32(q.X-nx), float32(q.Y-ny))
	c.ras.LineTo(float32(p.X-nx), float32(p.Y-ny))
	c.ras.ClosePath()
}

// WritePNG encodes the pixmap as PNG.
func (c *Context) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("canvas: encoding PNG: %w", err)
	}
	return nil
}

// SavePNG writes the pixmap to a PNG file.
func (c *Context) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	defer f.Close()
	return c.WritePNG(f)
}
