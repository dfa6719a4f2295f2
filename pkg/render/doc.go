// Package render provides visual outputs for placement results.
//
// # Overview
//
// This package contains the rendering layer that turns a placed board into
// visual artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Ratsnest diagrams (in [ratsnest] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := ratsnest.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Ratsnest Diagrams
//
// The [ratsnest] subpackage renders the connectivity of a placed board as a
// Graphviz diagram: components appear as boxes, springs (shared nets) as
// edges. It is the quickest way to eyeball whether the optimizer pulled
// connected components together.
//
//	dot := ratsnest.ToDOT(opt, ratsnest.Options{})
//	svg, err := ratsnest.RenderSVG(dot)
//
// [ratsnest]: github.com/boardwalk-eda/boardwalk/pkg/render/ratsnest
package render
