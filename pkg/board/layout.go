package board

import (
	"encoding/json"
	"fmt"
	"os"

	merr "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// =============================================================================
// Layout - Engine Output
// =============================================================================

// Layout is the serialized result of one layout pass.
//
// Width and Height are the occupied size reported by the engine: the region
// width and the tallest column including trailing spacing.
type Layout struct {
	Engine string         `json:"engine"`
	Region masonry.Rect   `json:"region"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Grid   masonry.Grid   `json:"grid"`
	Config masonry.Config `json:"config"`
	Seed   uint64         `json:"seed,omitempty"`
	Items  []Placed       `json:"items"`
}

// Placed is one item after the pass.
type Placed struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Column int     `json:"column"`
	Ratio  float64 `json:"ratio"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the item's rectangle.
func (p Placed) Rect() masonry.Rect {
	return masonry.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Columns groups item indices by column, in placement order.
func (l Layout) Columns() [][]int {
	out := make([][]int, l.Grid.Count)
	for i, it := range l.Items {
		if it.Column >= 0 && it.Column < len(out) {
			out[it.Column] = append(out[it.Column], i)
		}
	}
	return out
}

// FromEngine captures the last pass of e. boxes must be the items added to e,
// in the same order.
func FromEngine(e masonry.Engine, boxes []*masonry.Box, seed uint64) (Layout, error) {
	placements := e.Placements()
	if len(placements) != len(boxes) {
		return Layout{}, merr.New(merr.ErrCodeInternal,
			"layout has %d placements for %d items", len(placements), len(boxes))
	}
	size := e.SizeHint()
	out := Layout{
		Engine: string(e.Kind()),
		Region: e.Geometry(),
		Width:  size.W,
		Height: size.H,
		Grid:   e.Grid(),
		Config: e.Config(),
		Seed:   seed,
		Items:  make([]Placed, len(placements)),
	}
	for i, p := range placements {
		b := boxes[p.Index]
		out.Items[i] = Placed{
			ID:     b.ID,
			Label:  b.Label,
			Column: p.Column,
			Ratio:  p.Ratio,
			X:      p.Rect.X,
			Y:      p.Rect.Y,
			Width:  p.Rect.W,
			Height: p.Rect.H,
		}
	}
	return out, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that it
// names a known engine and that every item sits in a resolved column.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, merr.Wrap(merr.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if _, err := masonry.ParseKind(l.Engine); err != nil {
		return Layout{}, err
	}
	for i, it := range l.Items {
		if it.Column < 0 || it.Column >= l.Grid.Count {
			return Layout{}, merr.New(merr.ErrCodeInvalidInput,
				"item %d: column %d outside grid of %d", i, it.Column, l.Grid.Count)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, merr.Wrap(merr.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
