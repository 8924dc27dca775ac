package masonry

// pass holds the state of one layout pass. heights is allocated fresh for
// every pass and discarded afterwards.
type pass struct {
	cfg     Config
	grid    Grid
	heights []float64
}

func newPass(cfg Config, g Grid) *pass {
	return &pass{cfg: cfg, grid: g, heights: make([]float64, g.Count)}
}

// place computes the rectangle for item in column and advances that column.
// size is the item's size after overflow resolution.
func (p *pass) place(item Item, size Size, ratio float64, column int) (Rect, error) {
	var w float64
	switch p.cfg.HAdapt {
	case NoAdaption:
		w = p.grid.Width
	case Spacing:
		w = p.grid.Real
	case Zoom:
		w = p.grid.Real
		size = Size{W: w, H: w * ratio}
		item.SetFixedSize(size)
	default:
		return Rect{}, invalidStrategy("horizontal adaptation", int(p.cfg.HAdapt))
	}

	c := float64(column)
	r := Rect{
		X: p.cfg.Margins.Left + w*(c+0.5) + p.cfg.HSpacing*c - size.W/2,
		Y: p.cfg.Margins.Top + p.heights[column],
		W: size.W,
		H: size.H,
	}
	p.heights[column] += size.H + p.cfg.VSpacing
	return r, nil
}

// tallest returns the largest accumulated column height.
func (p *pass) tallest() float64 {
	var h float64
	for _, v := range p.heights {
		h = max(h, v)
	}
	return h
}
