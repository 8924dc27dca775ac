package render

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/masonry/pkg/board"
	merr "github.com/matzehuels/masonry/pkg/errors"
)

// Output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatColumns = "columns"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatColumns}

// Extension returns the file extension for format.
func Extension(format string) string {
	if format == FormatColumns {
		return "columns.svg"
	}
	return format
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatColumns:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return merr.New(merr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures [Render].
type Options struct {
	Guides     bool     `json:"guides,omitempty" toml:"guides"`
	NoLabels   bool     `json:"no_labels,omitempty" toml:"no_labels"`
	Background string   `json:"background,omitempty" toml:"background"`
	Scale      float64  `json:"scale,omitempty" toml:"scale"`
	Palette    []string `json:"palette,omitempty" toml:"palette"`
}

// SVGOptions converts o into [RenderSVG] options.
func (o Options) SVGOptions() []SVGOption {
	var opts []SVGOption
	if o.Guides {
		opts = append(opts, WithGuides())
	}
	if o.NoLabels {
		opts = append(opts, WithoutLabels())
	}
	if o.Background != "" {
		opts = append(opts, WithBackground(o.Background))
	}
	if len(o.Palette) > 0 {
		opts = append(opts, WithPalette(o.Palette...))
	}
	return opts
}

// Render produces one artifact in the given format.
func Render(ctx context.Context, l board.Layout, format string, o Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(l, o.SVGOptions()...), nil
	case FormatPNG:
		scale := o.Scale
		if scale <= 0 {
			scale = 2.0
		}
		return ToPNG(ctx, RenderSVG(l, o.SVGOptions()...), scale)
	case FormatPDF:
		return ToPDF(ctx, RenderSVG(l, o.SVGOptions()...))
	case FormatJSON:
		return board.MarshalLayout(l)
	case FormatDOT:
		return []byte(ToDOT(l)), nil
	case FormatColumns:
		return RenderColumns(ctx, l)
	default:
		return nil, merr.New(merr.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// RenderAll produces one artifact per format.
func RenderAll(ctx context.Context, l board.Layout, formats []string, o Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := Render(ctx, l, f, o)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		out[f] = data
	}
	return out, nil
}
