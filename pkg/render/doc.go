// Package render turns a computed masonry layout into visual artifacts.
//
// # Overview
//
// Every renderer consumes a [board.Layout], the serialized result of a layout
// pass, so layouts can be rendered long after (and far away from) the pass
// that produced them.
//
//   - SVG: item rectangles with labels and optional column guides ([RenderSVG])
//   - PNG and PDF: SVG converted through rsvg-convert ([ToPNG], [ToPDF])
//   - JSON: the layout document itself
//   - DOT: the column assignment as a Graphviz graph ([ToDOT])
//   - Columns: that graph laid out and rendered by Graphviz ([RenderColumns])
//
// Use [Render] to dispatch on a format name.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to the external rsvg-convert tool (from
// librsvg):
//
//	svg := render.RenderSVG(layout, render.WithGuides())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
package render
