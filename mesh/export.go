package mesh

import (
	fc "github.com/sruffner/figurecomposer-sub001"
	"github.com/sruffner/figurecomposer-sub001/colormap"
)

// PolygonBuffer accumulates mesh polygons for a downstream
// page-description writer: four vertices per polygon in Vertices, and —
// when the source surface is color-mapped — one packed fill color per
// polygon in Colors. Polygons appear in the same back-to-front order as
// on-screen rendering, so exported output is visually identical.
type PolygonBuffer struct {
	Vertices []fc.Point
	Colors   []colormap.RGB
}

// Len returns the number of polygons in the buffer.
func (b *PolygonBuffer) Len() int { return len(b.Vertices) / 4 }

// Reset empties the buffer, keeping its capacity.
func (b *PolygonBuffer) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Colors = b.Colors[:0]
}

// Vertex returns vertex i (0..3) of polygon p.
func (b *PolygonBuffer) Vertex(p, i int) fc.Point { return b.Vertices[p*4+i] }

// ExportPolygons appends every non-hole cell's four projected vertices
// (and packed fill color, when color-mapped) to buf, using exactly the
// traversal and cell computation of Render. A degraded mesh appends
// nothing.
func (g *Generator) ExportPolygons(buf *PolygonBuffer) {
	g.Update()
	if g.empty {
		return
	}
	g.forEachCell(func(avgZ float64) bool {
		buf.Vertices = append(buf.Vertices, g.verts[0], g.verts[1], g.verts[2], g.verts[3])
		if g.colorMapped {
			buf.Colors = append(buf.Colors,
				g.lut.MapColor(avgZ, g.rangeStart, g.rangeEnd, g.rangeLog, g.lutReversed))
		}
		return true
	})
}
