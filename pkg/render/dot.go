package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/masonry/pkg/board"
)

// ToDOT describes the column assignment of l as a Graphviz graph: one
// cluster per column, items chained top to bottom in placement order.
func ToDOT(l board.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph masonry {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#999999\"];\n")

	for c, idx := range l.Columns() {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", c)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("column %d", c))
		buf.WriteString("    style=dashed;\n")
		fill := Palette[c%len(Palette)]
		for _, i := range idx {
			it := l.Items[i]
			label := it.Label
			if label == "" {
				label = it.ID
			}
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q, height=%.2f];\n",
				it.ID, fmt.Sprintf("%s\n%.0fx%.0f", label, it.Width, it.Height), fill, nodeHeight(it.Height))
		}
		for k := 1; k < len(idx); k++ {
			fmt.Fprintf(&buf, "    %q -> %q;\n", l.Items[idx[k-1]].ID, l.Items[idx[k]].ID)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeHeight maps an item height to inches so taller items read taller.
func nodeHeight(h float64) float64 {
	return max(0.5, min(3, h/72))
}

// RenderColumns lays out [ToDOT] with Graphviz and returns SVG.
func RenderColumns(ctx context.Context, l board.Layout) ([]byte, error) {
	return RenderDOT(ctx, ToDOT(l))
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
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
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a unitless
// one so the SVG scales like the other renderers' output.
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
