package masonry

// BoxLayout is the masonry engine with a configured column count. The column
// width is derived from the region on every pass.
type BoxLayout struct {
	layout
	columnWidth float64
}

// NewBoxLayout creates a box engine with [DefaultConfig] and opts applied.
func NewBoxLayout(opts ...Option) *BoxLayout {
	return &BoxLayout{layout: newLayout(KindBox, opts)}
}

// ColumnCount returns the configured column count.
func (b *BoxLayout) ColumnCount() int { return b.cfg.ColumnCount }

// SetColumnCount sets the column count for subsequent passes.
func (b *BoxLayout) SetColumnCount(n int) { b.cfg.ColumnCount = n }

// ColumnWidth returns the width resolved by the last pass.
func (b *BoxLayout) ColumnWidth() float64 { return b.columnWidth }

// SetGeometry assigns the region and lays out all items.
func (b *BoxLayout) SetGeometry(rect Rect) (Size, error) {
	if err := b.prepare(); err != nil {
		return Size{}, err
	}
	g, err := boxGrid(rect.W, b.cfg)
	if err != nil {
		return Size{}, err
	}
	b.columnWidth = g.Width
	return b.run(rect, g)
}

var _ Engine = (*BoxLayout)(nil)
