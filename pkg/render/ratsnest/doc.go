// Package ratsnest renders board connectivity as node-link diagrams.
//
// # Overview
//
// A ratsnest is the classic PCB design view: every component drawn with
// straight lines to everything it is electrically connected to. This package
// produces that view as a Graphviz diagram, where components appear as boxes
// and springs (shared nets) as edges.
//
// # Usage
//
// Convert an optimizer's state to DOT format, then render to SVG:
//
//	dot := ratsnest.ToDOT(opt, ratsnest.Options{Detailed: false})
//	svg, err := ratsnest.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := ratsnest.RenderPDF(dot)
//	png, err := ratsnest.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the component pose and edges
//     carry net names
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Fixed components are drawn with a grey fill so connectors and mounting
// hardware are visually distinct from the parts the optimizer moved.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package ratsnest
