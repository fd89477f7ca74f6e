// Package export writes mesh polygons to a page-description stream. The
// Writer consumes a mesh.PolygonBuffer — preserving the buffer's
// back-to-front polygon order so exported pages match on-screen
// rendering — and emits a PDF page via codeberg.org/go-pdf/fpdf.
package export

import (
	"fmt"
	"image/color"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/sruffner/figurecomposer-sub001/mesh"
)

// Writer emits mesh polygons onto one PDF page.
type Writer struct {
	pdf *fpdf.Fpdf

	fill        color.RGBA
	strokeWidth float64
	strokeColor color.RGBA
}

// NewWriter creates a writer with a single page of the given size in
// points. Buffer vertices are taken to be in page coordinates.
func NewWriter(width, height float64) *Writer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &Writer{pdf: pdf}
}

// SetFill sets the uniform fill color used for buffers without per-polygon
// colors (a surface that is solid-filled rather than color-mapped). A
// fully transparent color disables filling.
func (w *Writer) SetFill(c color.RGBA) {
	w.fill = c
}

// SetStroke configures outline stroking of every polygon. A width of zero
// disables stroking.
func (w *Writer) SetStroke(width float64, c color.RGBA) {
	w.strokeWidth = width
	w.strokeColor = c
}

// WritePolygons appends the buffer's polygons to the page in buffer
// order. Per-polygon packed colors take precedence over the uniform fill.
func (w *Writer) WritePolygons(buf *mesh.PolygonBuffer) {
	stroke := w.strokeWidth > 0 && w.strokeColor.A > 0
	if stroke {
		w.pdf.SetLineWidth(w.strokeWidth)
		w.pdf.SetDrawColor(int(w.strokeColor.R), int(w.strokeColor.G), int(w.strokeColor.B))
	}
	mapped := len(buf.Colors) == buf.Len()

	pts := make([]fpdf.PointType, 4)
	for p := 0; p < buf.Len(); p++ {
		fill := mapped || w.fill.A > 0
		switch {
		case mapped:
			c := buf.Colors[p]
			w.pdf.SetFillColor(int(c.R()), int(c.G()), int(c.B()))
		case fill:
			w.pdf.SetFillColor(int(w.fill.R), int(w.fill.G), int(w.fill.B))
		}

		for i := 0; i < 4; i++ {
			v := buf.Vertex(p, i)
			pts[i] = fpdf.PointType{X: v.X, Y: v.Y}
		}
		style := polygonStyle(fill, stroke)
		if style == "" {
			continue
		}
		w.pdf.Polygon(pts, style)
	}
}

// polygonStyle maps fill/stroke flags to an fpdf draw style.
func polygonStyle(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "FD"
	case fill:
		return "F"
	case stroke:
		return "D"
	}
	return ""
}

// Output finalizes the document and writes it to out.
func (w *Writer) Output(out io.Writer) error {
	if err := w.pdf.Output(out); err != nil {
		return fmt.Errorf("export: writing PDF: %w", err)
	}
	return nil
}

// WriteFile finalizes the document and writes it to a file.
func (w *Writer) WriteFile(path string) error {
	if err := w.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}
