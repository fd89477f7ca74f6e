// Command surfview renders a demo data surface through the full
// color-mapped mesh pipeline: grid -> camera projection -> back-to-front
// quads -> PNG, with optional PDF export.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	fc "github.com/sruffner/figurecomposer-sub001"
	"github.com/sruffner/figurecomposer-sub001/canvas"
	"github.com/sruffner/figurecomposer-sub001/colormap"
	"github.com/sruffner/figurecomposer-sub001/export"
	"github.com/sruffner/figurecomposer-sub001/mesh"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		size      = flag.Int("size", 120, "demo grid size (samples per side)")
		rotation  = flag.Float64("rotation", 30, "camera rotation in degrees")
		elevation = flag.Float64("elevation", 25, "camera elevation in degrees")
		limit     = flag.Int("limit", mesh.DefaultMeshLimit, "mesh size limit")
		cmap      = flag.String("cmap", "viridis", "built-in color map name")
		custom    = flag.Bool("custom", false, "use a generated HCL ramp instead of -cmap")
		reversed  = flag.Bool("reversed", false, "reverse the color ramp")
		strokeW   = flag.Float64("stroke", 0.25, "cell outline width (0 disables)")
		output    = flag.String("output", "surface.png", "output PNG file")
		pdfOut    = flag.String("pdf", "", "also export the mesh to this PDF file")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		fc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	m, err := pickMap(*cmap, *custom)
	if err != nil {
		log.Fatal(err)
	}

	grid := demoGrid(*size)
	z0, z1, ok := grid.ZRange()
	if !ok {
		log.Fatal("demo grid has no defined samples")
	}
	x0, x1 := grid.XRange()
	y0, y1 := grid.YRange()

	cam := mesh.NewCamera(x0, x1, y0, y1, float64(z0), float64(z1),
		*rotation, *elevation, float64(*width), float64(*height))
	rng := mesh.StaticRange{Start: float64(z0), End: float64(z1)}

	gen := mesh.New(grid, cam,
		mesh.WithMeshLimit(*limit),
		mesh.WithColorMap(m.LUT(), *reversed, rng),
		mesh.WithStroke(*strokeW, color.RGBA{A: 255}))

	dc := canvas.NewContext(*width, *height)
	dc.Clear(color.White)
	if completed := gen.Render(context.Background(), dc); !completed {
		log.Fatal("render did not complete")
	}
	if err := dc.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Rendered %d cells with %q to %s (%dx%d)",
		gen.CellCount(), m.Name(), *output, *width, *height)

	if *pdfOut != "" {
		var buf mesh.PolygonBuffer
		gen.ExportPolygons(&buf)
		w := export.NewWriter(float64(*width), float64(*height))
		w.SetStroke(*strokeW, color.RGBA{A: 255})
		w.WritePolygons(&buf)
		if err := w.WriteFile(*pdfOut); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		log.Printf("Exported %d polygons to %s", buf.Len(), *pdfOut)
	}
}

// pickMap resolves the color map: a built-in by name, or a custom ramp of
// evenly spaced HCL hues at constant chroma and lightness.
func pickMap(name string, custom bool) (*colormap.Map, error) {
	if !custom {
		m, ok := colormap.Lookup(name)
		if !ok {
			names := make([]string, 0, 14)
			for _, b := range colormap.Builtins() {
				names = append(names, b.Name())
			}
			return nil, fmt.Errorf("unknown color map %q (built-ins: %s)",
				name, strings.Join(names, ", "))
		}
		return m, nil
	}

	const n = 8
	frames := make([]colormap.KeyFrame, n)
	for i := 0; i < n; i++ {
		hue := 280 * float64(i) / float64(n-1)
		r, g, b := colorful.Hcl(hue, 0.6, 0.2+0.6*float64(i)/float64(n-1)).Clamped().RGB255()
		frames[i] = colormap.KeyFrame{
			Index: colormap.MaxIndex * i / (n - 1),
			Color: colormap.RGBOf(r, g, b),
		}
	}
	return colormap.New("hcl_demo", frames)
}

// demoGrid builds an n x n sinc-style surface over [-8,8] x [-8,8] with a
// rectangular missing-data patch to exercise hole handling.
func demoGrid(n int) *mesh.MatrixGrid {
	samples := make([]float32, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			x := -8 + 16*float64(col)/float64(n-1)
			y := -8 + 16*float64(row)/float64(n-1)
			r := math.Hypot(x, y)
			z := 1.0
			if r != 0 {
				z = math.Sin(r) / r
			}
			samples[row*n+col] = float32(z)
		}
	}
	// Punch a hole in one quadrant.
	for row := n / 8; row < n/4; row++ {
		for col := n / 8; col < n/4; col++ {
			samples[row*n+col] = math32.NaN()
		}
	}
	grid, err := mesh.NewMatrixGrid(n, n, samples, -8, 8, -8, 8)
	if err != nil {
		log.Fatal(err)
	}
	return grid
}
