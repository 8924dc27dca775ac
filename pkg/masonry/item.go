package masonry

// Item is a host-owned handle placed by the layout. The engine never owns
// items; it reads their size hint and invokes the two setters.
type Item interface {
	// SizeHint returns the item's preferred size: its fixed size once one
	// has been set, its natural size otherwise.
	SizeHint() Size

	// SetFixedSize overrides the item's size. Called by overflow resolution
	// and by the Zoom adaptation.
	SetFixedSize(Size)

	// SetGeometry applies the rectangle computed for the item in a pass.
	SetGeometry(Rect)
}

// Box is an in-memory [Item] for hosts without a widget tree of their own,
// such as the CLI renderers and the HTTP API.
type Box struct {
	ID      string
	Label   string
	Natural Size

	fixed    Size
	hasFixed bool
	geometry Rect
}

// NewBox creates a box with the given natural size.
func NewBox(id string, w, h float64) *Box {
	return &Box{ID: id, Natural: Size{W: w, H: h}}
}

// SizeHint returns the fixed size if set, otherwise the natural size.
func (b *Box) SizeHint() Size {
	if b.hasFixed {
		return b.fixed
	}
	return b.Natural
}

// SetFixedSize records a size override.
func (b *Box) SetFixedSize(s Size) {
	b.fixed = s
	b.hasFixed = true
}

// FixedSize returns the size override and whether one is set.
func (b *Box) FixedSize() (Size, bool) { return b.fixed, b.hasFixed }

// ClearFixedSize drops the size override so the natural size applies again.
// Passes call it when an item needs no overflow coercion.
func (b *Box) ClearFixedSize() {
	b.fixed = Size{}
	b.hasFixed = false
}

// SetGeometry records the rectangle assigned by the last pass.
func (b *Box) SetGeometry(r Rect) { b.geometry = r }

// Geometry returns the rectangle assigned by the last pass.
func (b *Box) Geometry() Rect { return b.geometry }

var _ Item = (*Box)(nil)
