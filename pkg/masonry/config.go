package masonry

import (
	merr "github.com/matzehuels/masonry/pkg/errors"
)

// Defaults for a freshly created layout.
const (
	DefaultSpacing     = 16.0
	DefaultColumnCount = 3
	DefaultColumnWidth = 200.0
)

// Config holds the policy and sizing parameters of a layout. All fields take
// effect on the next pass; changing them never triggers a pass by itself.
//
// ColumnCount is only read by [BoxLayout] and ColumnWidth only by
// [FlowLayout]; the other engine derives that value per pass.
type Config struct {
	HAdapt      HAdapt   `json:"h_adapt" toml:"h_adapt"`
	VExpand     VExpand  `json:"v_expand" toml:"v_expand"`
	Overflow    Overflow `json:"overflow" toml:"overflow"`
	HSpacing    float64  `json:"h_spacing" toml:"h_spacing"`
	VSpacing    float64  `json:"v_spacing" toml:"v_spacing"`
	Margins     Margins  `json:"margins" toml:"margins"`
	ColumnCount int      `json:"column_count,omitempty" toml:"column_count"`
	ColumnWidth float64  `json:"column_width,omitempty" toml:"column_width"`
}

// DefaultConfig returns the configuration a new layout starts with:
// Zoom adaptation, height balancing, AutoZoom overflow and 16 units of spacing.
func DefaultConfig() Config {
	return Config{
		HAdapt:      Zoom,
		VExpand:     HeightBalance,
		Overflow:    AutoZoom,
		HSpacing:    DefaultSpacing,
		VSpacing:    DefaultSpacing,
		ColumnCount: DefaultColumnCount,
		ColumnWidth: DefaultColumnWidth,
	}
}

// Validate checks the three strategy fields. Sizing parameters are checked by
// the region resolver of the engine that uses them.
func (c Config) Validate() error {
	if !c.HAdapt.Valid() {
		return invalidStrategy("horizontal adaptation", int(c.HAdapt))
	}
	if !c.VExpand.Valid() {
		return invalidStrategy("vertical expansion", int(c.VExpand))
	}
	if !c.Overflow.Valid() {
		return invalidStrategy("overflow", int(c.Overflow))
	}
	return nil
}

// ValidateSpacing checks that spacing and margins are non-negative.
func (c Config) ValidateSpacing() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"horizontal spacing", c.HSpacing},
		{"vertical spacing", c.VSpacing},
		{"left margin", c.Margins.Left},
		{"top margin", c.Margins.Top},
		{"right margin", c.Margins.Right},
		{"bottom margin", c.Margins.Bottom},
	}
	for _, chk := range checks {
		if err := merr.ValidateSpacing(chk.name, chk.v); err != nil {
			return err
		}
	}
	return nil
}
