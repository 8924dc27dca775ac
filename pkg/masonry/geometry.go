package masonry

// Size is a width/height pair in layout units.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Margins are content insets applied inside the layout region.
type Margins struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Uniform returns margins with the same inset on every side.
func Uniform(m float64) Margins {
	return Margins{Left: m, Top: m, Right: m, Bottom: m}
}

// Horizontal returns the sum of the left and right insets.
func (m Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns the sum of the top and bottom insets.
func (m Margins) Vertical() float64 { return m.Top + m.Bottom }
