package ratsnest

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/boardwalk-eda/boardwalk/pkg/place"
	"github.com/boardwalk-eda/boardwalk/pkg/render"
)

// Options configures ratsnest diagram rendering.
type Options struct {
	// Detailed includes the component pose in node labels and net names on
	// edges. When false, only component refs are shown.
	Detailed bool
}

// ToDOT converts an optimizer's connectivity to Graphviz DOT format.
// Components become nodes and springs become undirected edges. The resulting
// DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Fixed components are rendered with grey fill to distinguish connectors and
// mounting hardware from movable parts.
func ToDOT(o *place.Optimizer, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph ratsnest {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.1\"];\n")
	buf.WriteString("\n")

	for _, c := range o.Components() {
		label := c.Ref
		if opts.Detailed {
			label = fmt.Sprintf("%s\n(%.1f, %.1f) %.0f°", c.Ref, c.X, c.Y, c.Rotation)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if c.Fixed {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		// Pin positions to the placement so neato preserves the solution.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", c.X, c.Y))
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Ref, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range o.Springs() {
		attrs := ""
		if opts.Detailed && s.NetName != "" {
			attrs = fmt.Sprintf(" [label=%q, fontsize=10]", s.NetName)
		}
		fmt.Fprintf(&buf, "  %q -- %q%s;\n", s.Comp1Ref, s.Comp2Ref, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
