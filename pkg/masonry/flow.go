package masonry

// FlowLayout is the masonry engine with a configured column width. The
// column count is derived from the region on every pass.
type FlowLayout struct {
	layout
	columnCount int
}

// NewFlowLayout creates a flow engine with [DefaultConfig] and opts applied.
func NewFlowLayout(opts ...Option) *FlowLayout {
	return &FlowLayout{layout: newLayout(KindFlow, opts)}
}

// ColumnWidth returns the configured column width.
func (f *FlowLayout) ColumnWidth() float64 { return f.cfg.ColumnWidth }

// SetColumnWidth sets the column width for subsequent passes.
func (f *FlowLayout) SetColumnWidth(w float64) { f.cfg.ColumnWidth = w }

// ColumnCount returns the count resolved by the last pass.
func (f *FlowLayout) ColumnCount() int { return f.columnCount }

// SetGeometry assigns the region and lays out all items.
func (f *FlowLayout) SetGeometry(rect Rect) (Size, error) {
	if err := f.prepare(); err != nil {
		return Size{}, err
	}
	g, err := flowGrid(rect.W, f.cfg)
	if err != nil {
		return Size{}, err
	}
	f.columnCount = g.Count
	return f.run(rect, g)
}

var _ Engine = (*FlowLayout)(nil)
