package masonry

import (
	"math"
	"testing"

	merr "github.com/matzehuels/masonry/pkg/errors"
)

func TestResolveOverflow(t *testing.T) {
	tests := []struct {
		name      string
		natural   Size
		column    float64
		policy    Overflow
		want      Size
		wantFixed bool
	}{
		{"matching width untouched", Size{100, 80}, 100, AutoZoom, Size{100, 80}, false},
		{"autozoom upscale", Size{50, 75}, 100, AutoZoom, Size{100, 150}, true},
		{"autozoom truncates", Size{300, 100}, 100, AutoZoom, Size{100, 33}, true},
		{"autozoom truncates fraction", Size{3, 2}, 10, AutoZoom, Size{10, 6}, true},
		{"autocrop keeps height", Size{50, 75}, 100, AutoCrop, Size{100, 75}, true},
		{"ignore keeps size", Size{50, 75}, 100, Ignore, Size{50, 75}, false},
		{"near equal still overflows", Size{100.0000001, 50}, 100, AutoCrop, Size{100, 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Box{Natural: tt.natural}
			got, err := resolveOverflow(b, tt.natural, tt.column, tt.policy)
			if err != nil {
				t.Fatalf("resolveOverflow() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOverflow() = %v, want %v", got, tt.want)
			}
			if got := b.SizeHint(); got != tt.want {
				t.Errorf("SizeHint() = %v, want %v", got, tt.want)
			}
			if _, fixed := b.FixedSize(); fixed != tt.wantFixed {
				t.Errorf("fixed = %v, want %v", fixed, tt.wantFixed)
			}
		})
	}
}

func TestResolveOverflowClearsStaleSize(t *testing.T) {
	for _, policy := range []Overflow{Ignore, AutoZoom} {
		t.Run(policy.String(), func(t *testing.T) {
			b := NewBox("a", 100, 80)
			b.SetFixedSize(Size{W: 40, H: 32})
			column := 100.0
			if policy == Ignore {
				column = 60
			}
			got, err := resolveOverflow(b, b.Natural, column, policy)
			if err != nil {
				t.Fatalf("resolveOverflow() error: %v", err)
			}
			if got != b.Natural || b.SizeHint() != b.Natural {
				t.Errorf("size = %v, SizeHint() = %v, want natural %v", got, b.SizeHint(), b.Natural)
			}
		})
	}
}

func TestResolveOverflowInvalid(t *testing.T) {
	b := NewBox("a", 50, 50)
	_, err := resolveOverflow(b, b.Natural, 100, Overflow(-1))
	if !merr.Is(err, merr.ErrCodeInvalidConfig) {
		t.Errorf("resolveOverflow(invalid) error = %v, want INVALID_CONFIG", err)
	}
	if _, fixed := b.FixedSize(); fixed {
		t.Error("item should not be resized on invalid strategy")
	}
}

func TestAutoZoomAcrossResizes(t *testing.T) {
	for _, adapt := range []HAdapt{NoAdaption, Spacing} {
		t.Run(adapt.String(), func(t *testing.T) {
			b := NewBox("a", 300, 100)
			e := NewBoxLayout(
				WithColumnCount(2),
				WithSpacing(0),
				WithHAdapt(adapt),
				WithOverflow(AutoZoom),
			)
			if err := e.AddItem(b); err != nil {
				t.Fatalf("AddItem() error: %v", err)
			}

			// Each pass rescales from the natural 300x100, never from the
			// size the previous pass fixed.
			for _, w := range []float64{200, 70, 600, 200, 600} {
				if _, err := e.SetGeometry(Rect{W: w, H: 400}); err != nil {
					t.Fatalf("SetGeometry(%v) error: %v", w, err)
				}
				col := w / 2
				want := Size{W: col, H: math.Trunc(100 * col / 300)}
				if got := b.SizeHint(); got != want {
					t.Errorf("width %v: SizeHint() = %v, want %v", w, got, want)
				}
				if got := b.Geometry(); got.W != want.W || got.H != want.H {
					t.Errorf("width %v: Geometry() = %v, want size %v", w, got, want)
				}
			}
		})
	}
}

func TestNaturalWidthMatchAfterZoom(t *testing.T) {
	b := NewBox("a", 100, 50)
	e := NewBoxLayout(WithColumnCount(1), WithSpacing(0), WithHAdapt(NoAdaption), WithOverflow(AutoZoom))
	if err := e.AddItem(b); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if _, err := e.SetGeometry(Rect{W: 200, H: 400}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SetGeometry(Rect{W: 100, H: 400}); err != nil {
		t.Fatal(err)
	}
	if got := e.Placements()[0].Rect; got.W != 100 || got.H != 50 {
		t.Errorf("Rect = %v, want the natural 100x50 once the column matches", got)
	}
	if _, fixed := b.FixedSize(); fixed {
		t.Error("fixed size from the first pass should be cleared")
	}
}
