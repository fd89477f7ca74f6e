// Package fc holds the shared leaf types and logging entry point for the
// FigureComposer surface rendering core.
//
// # Overview
//
// The module implements the color-mapped 3D surface pipeline of a scientific
// figure composer: an immutable color-map / lookup-table subsystem
// (package colormap), a mesh generator that converts a regular grid of
// scalar samples into a back-to-front ordered, color-mapped polygon mesh
// (package mesh), a software paint target for on-screen rendering
// (package canvas), and a page-description writer for export
// (package export).
//
// # Quick Start
//
//	lut := colormap.Jet.LUT()
//	gen := mesh.New(grid, cam,
//		mesh.WithColorMap(lut, false, rng),
//		mesh.WithStroke(0.5, color.RGBA{A: 255}))
//
//	dc := canvas.NewContext(800, 600)
//	completed := gen.Render(ctx, dc)
//
// # Data Flow
//
// ColorMap -> LUT (materialized once per map change) -> mesh generator
// (one lookup per projected cell) -> canvas / export stream. The mesh
// generator is single-threaded and caches its derived state until
// Invalidate is called; see the mesh package for the invalidation contract.
//
// # Coordinate System
//
// Screen space uses standard computer graphics coordinates: origin at
// top-left, X increases right, Y increases down. Data space is the grid's
// own [X0,X1] x [Y0,Y1] extents with Z from the sample matrix.
package fc
