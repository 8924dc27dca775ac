package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/masonry/pkg/board"
)

const (
	fontFamily      = "Helvetica, Arial, sans-serif"
	fontHeightRatio = 0.35
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

// Palette is the fill cycle used per column.
var Palette = []string{"#8ecae6", "#ffb703", "#90be6d", "#f4a261", "#cdb4db", "#e76f51", "#a8dadc", "#ffd6a5"}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	guides     bool
	labels     bool
	background string
	palette    []string
}

// WithGuides draws a shaded band behind each column.
func WithGuides() SVGOption { return func(r *svgRenderer) { r.guides = true } }

// WithoutLabels omits item labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithBackground fills the canvas with color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithPalette replaces the per-column fill cycle.
func WithPalette(colors ...string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true, palette: Palette}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// CanvasSize returns the drawing size for l: at least the region, and tall
// enough for the top margin, the tallest column and the bottom margin.
func CanvasSize(l board.Layout) (w, h float64) {
	m := l.Config.Margins
	w = max(l.Region.W, l.Width)
	h = max(l.Region.H, m.Top+l.Height+m.Bottom)
	for _, it := range l.Items {
		w = max(w, it.X+it.Width)
		h = max(h, it.Y+it.Height)
	}
	return max(w, 1), max(h, 1)
}

// RenderSVG draws every placed item as a rectangle filled by column.
func RenderSVG(l board.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := CanvasSize(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	if r.guides {
		renderGuides(&buf, l, h)
	}
	for _, it := range l.Items {
		fill := r.palette[it.Column%len(r.palette)]
		fmt.Fprintf(&buf, `  <rect id="item-%s" class="item" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
			escapeXML(it.ID), it.X, it.Y, it.Width, it.Height, escapeXML(fill))
	}
	if r.labels {
		for _, it := range l.Items {
			renderLabel(&buf, it)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGuides(buf *bytes.Buffer, l board.Layout, canvasH float64) {
	cfg := l.Config
	cw := l.Grid.ColumnWidthFor(cfg.HAdapt)
	for c := range l.Grid.Count {
		x := l.Grid.ColumnLeft(c, cfg.HAdapt, cfg.Margins, cfg.HSpacing)
		fmt.Fprintf(buf, `  <rect class="column" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#000" fill-opacity="0.04"/>`+"\n",
			x, cfg.Margins.Top, cw, max(0, canvasH-cfg.Margins.Vertical()))
	}
}

func renderLabel(buf *bytes.Buffer, it board.Placed) {
	label := it.Label
	if label == "" {
		label = it.ID
	}
	size := fontSizeFor(it.Width, it.Height, len([]rune(label)))
	if it.Height < size {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="#222">%s</text>`+"\n",
		it.X+it.Width/2, it.Y+it.Height/2, fontFamily, size, escapeXML(truncateLabel(label, it.Width, size)))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func truncateLabel(label string, width, fontSize float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
