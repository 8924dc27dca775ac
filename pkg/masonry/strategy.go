package masonry

import (
	"fmt"
	"strings"

	merr "github.com/matzehuels/masonry/pkg/errors"
)

// HAdapt is the horizontal adaptation strategy: what happens when the column
// widths plus spacing do not exactly fill the region.
type HAdapt int

const (
	// NoAdaption positions items on the resolved column grid and keeps their size.
	NoAdaption HAdapt = iota
	// Spacing absorbs the leftover width into the columns (flow engine) and
	// keeps item sizes.
	Spacing
	// Zoom rescales every item to the real column width, preserving its ratio.
	Zoom
)

// VExpand is the vertical expansion strategy: which column receives the next item.
type VExpand int

const (
	// HeightBalance picks the shortest column, lowest index on ties.
	HeightBalance VExpand = iota
	// OrderInsert distributes items round-robin by insertion index.
	OrderInsert
	// RandomInsert picks a uniformly random column.
	RandomInsert
)

// Overflow is the strategy applied when an item's width differs from the
// column width.
type Overflow int

const (
	// Ignore leaves the item at its natural size.
	Ignore Overflow = iota
	// AutoZoom rescales the item to the column width, preserving its ratio.
	AutoZoom
	// AutoCrop forces the item to the column width and keeps its height.
	AutoCrop
)

var (
	hadaptNames   = []string{"noadaption", "spacing", "zoom"}
	vexpandNames  = []string{"heightbalance", "orderinsert", "randominsert"}
	overflowNames = []string{"ignore", "autozoom", "autocrop"}
)

// aliases accepted by the Parse functions in addition to the canonical names.
var (
	hadaptAliases   = map[string]HAdapt{"none": NoAdaption, "autozoom": Zoom}
	vexpandAliases  = map[string]VExpand{"balance": HeightBalance, "order": OrderInsert, "random": RandomInsert}
	overflowAliases = map[string]Overflow{"zoom": AutoZoom, "crop": AutoCrop}
)

func (h HAdapt) String() string { return enumName(hadaptNames, int(h)) }
func (v VExpand) String() string { return enumName(vexpandNames, int(v)) }
func (o Overflow) String() string { return enumName(overflowNames, int(o)) }

// Valid reports whether h is one of the declared strategies.
func (h HAdapt) Valid() bool { return h >= NoAdaption && h <= Zoom }

// Valid reports whether v is one of the declared strategies.
func (v VExpand) Valid() bool { return v >= HeightBalance && v <= RandomInsert }

// Valid reports whether o is one of the declared strategies.
func (o Overflow) Valid() bool { return o >= Ignore && o <= AutoCrop }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return names[i]
}

// normalize lowercases s and strips separators so "Height-Balance",
// "height_balance" and "HeightBalance" compare equal.
func normalize(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func parseEnum[T ~int](kind, s string, names []string, aliases map[string]T) (T, error) {
	key := normalize(s)
	for i, n := range names {
		if n == key {
			return T(i), nil
		}
	}
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	return 0, merr.New(merr.ErrCodeInvalidConfig, "invalid %s strategy: %q (must be one of: %s)",
		kind, s, strings.Join(names, ", "))
}

// ParseHAdapt parses a horizontal adaptation strategy name.
func ParseHAdapt(s string) (HAdapt, error) {
	return parseEnum("horizontal adaptation", s, hadaptNames, hadaptAliases)
}

// ParseVExpand parses a vertical expansion strategy name.
func ParseVExpand(s string) (VExpand, error) {
	return parseEnum("vertical expansion", s, vexpandNames, vexpandAliases)
}

// ParseOverflow parses an overflow strategy name.
func ParseOverflow(s string) (Overflow, error) {
	return parseEnum("overflow", s, overflowNames, overflowAliases)
}

func (h HAdapt) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, invalidStrategy("horizontal adaptation", int(h))
	}
	return []byte(h.String()), nil
}

func (h *HAdapt) UnmarshalText(b []byte) error {
	v, err := ParseHAdapt(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (v VExpand) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, invalidStrategy("vertical expansion", int(v))
	}
	return []byte(v.String()), nil
}

func (v *VExpand) UnmarshalText(b []byte) error {
	p, err := ParseVExpand(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

func (o Overflow) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, invalidStrategy("overflow", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Overflow) UnmarshalText(b []byte) error {
	v, err := ParseOverflow(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func invalidStrategy(kind string, v int) error {
	return merr.New(merr.ErrCodeInvalidConfig, "invalid %s strategy: %d", kind, v)
}
