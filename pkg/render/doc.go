// Package render draws chart specifications as SVG.
//
// # Overview
//
// Each chart kind has a [Renderer]. Rendering happens in two steps:
//
//  1. [Renderer.Plan] composes the layout planners into a [Frame]: the
//     canvas size, legend footprint, padding, axis and label plans and the
//     chart bounds. Planning is pure and can be inspected without drawing.
//  2. [Renderer.Render] draws the frame: gridlines, labels, bars, lines or
//     slices, titles and the legend.
//
// Renderers are stateless values and safe for concurrent use.
//
//	r, ok := render.For(chart.KindBar)
//	svg := r.Render(spec)
//
// # Empty Input
//
// A chart without datasets (or a pie whose first dataset has no values)
// renders a fixed canvas containing only a centered "No data" label.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
