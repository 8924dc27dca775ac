package masonry

import (
	"math"

	merr "github.com/matzehuels/masonry/pkg/errors"
)

// Grid is the column structure resolved for one pass.
type Grid struct {
	Count int `json:"count"`
	// Width is the column width overflow resolution and NoAdaption use:
	// derived for the box engine, configured for the flow engine.
	Width float64 `json:"width"`
	// Real is the width a column occupies once leftover space is absorbed.
	Real float64 `json:"real_width"`
}

// ColumnWidthFor returns the width items are centred on under adapt.
func (g Grid) ColumnWidthFor(adapt HAdapt) float64 {
	if adapt == NoAdaption {
		return g.Width
	}
	return g.Real
}

// ColumnLeft returns the x coordinate where column c starts under adapt.
func (g Grid) ColumnLeft(c int, adapt HAdapt, m Margins, spacing float64) float64 {
	return m.Left + (g.ColumnWidthFor(adapt)+spacing)*float64(c)
}

// ResolveColumnWidth derives the column width for a fixed column count:
//
//	(regionWidth - left - right - spacing*(count-1)) / count
//
// A count below one is a configuration error.
func ResolveColumnWidth(regionWidth float64, m Margins, spacing float64, count int) (float64, error) {
	if count <= 0 {
		return 0, merr.New(merr.ErrCodeInvalidConfig, "column count must be positive (got %d)", count)
	}
	return realWidth(regionWidth, m, spacing, count), nil
}

// ResolveColumnCount derives how many columns of the given width fit:
//
//	max(1, floor((regionWidth - left - right + spacing) / (width + spacing)))
//
// It always yields at least one column, however narrow the region.
func ResolveColumnCount(regionWidth float64, m Margins, spacing, width float64) (int, error) {
	if width+spacing <= 0 || math.IsNaN(width) {
		return 0, merr.New(merr.ErrCodeInvalidConfig, "column width plus spacing must be positive (got %v)", width+spacing)
	}
	n := math.Floor((regionWidth - m.Horizontal() + spacing) / (width + spacing))
	if n < 1 || math.IsNaN(n) {
		return 1, nil
	}
	return int(n), nil
}

func realWidth(regionWidth float64, m Margins, spacing float64, count int) float64 {
	return (regionWidth - m.Horizontal() - spacing*float64(count-1)) / float64(count)
}

func boxGrid(regionWidth float64, c Config) (Grid, error) {
	w, err := ResolveColumnWidth(regionWidth, c.Margins, c.HSpacing, c.ColumnCount)
	if err != nil {
		return Grid{}, err
	}
	return Grid{Count: c.ColumnCount, Width: w, Real: w}, nil
}

func flowGrid(regionWidth float64, c Config) (Grid, error) {
	n, err := ResolveColumnCount(regionWidth, c.Margins, c.HSpacing, c.ColumnWidth)
	if err != nil {
		return Grid{}, err
	}
	return Grid{Count: n, Width: c.ColumnWidth, Real: realWidth(regionWidth, c.Margins, c.HSpacing, n)}, nil
}
