package masonry

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	merr "github.com/matzehuels/masonry/pkg/errors"
)

// Kind names an engine variant.
type Kind string

const (
	// KindBox is the fixed column count engine.
	KindBox Kind = "box"
	// KindFlow is the fixed column width engine.
	KindFlow Kind = "flow"
)

// ParseKind parses an engine name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBox, KindFlow:
		return k, nil
	default:
		return "", merr.New(merr.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: box, flow)", s)
	}
}

// Engine is the behaviour shared by [BoxLayout] and [FlowLayout].
type Engine interface {
	// Kind reports the engine variant.
	Kind() Kind

	// AddItem appends an item and caches its aspect ratio.
	AddItem(Item) error
	// Count returns the number of items.
	Count() int
	// ItemAt returns the item at index, or false when out of range.
	ItemAt(index int) (Item, bool)

	// SetGeometry assigns the layout region and runs a pass.
	SetGeometry(Rect) (Size, error)
	// Geometry returns the last assigned region.
	Geometry() Rect
	// SizeHint returns the size occupied by the last pass, or the minimum
	// size before any pass has run.
	SizeHint() Size
	// Placements returns the per-item results of the last pass.
	Placements() []Placement
	// Grid returns the column structure resolved by the last pass.
	Grid() Grid

	// Config returns a copy of the current configuration.
	Config() Config
	// SetConfig replaces the configuration for subsequent passes.
	SetConfig(Config)
}

// Placement records where one item landed in a pass.
type Placement struct {
	Index  int     `json:"index"`
	Column int     `json:"column"`
	Ratio  float64 `json:"ratio"`
	Rect   Rect    `json:"rect"`
}

// Option configures a layout at construction time.
type Option func(*layout)

// WithColumnCount sets the column count of a [BoxLayout].
func WithColumnCount(n int) Option { return func(l *layout) { l.cfg.ColumnCount = n } }

// WithColumnWidth sets the column width of a [FlowLayout].
func WithColumnWidth(w float64) Option { return func(l *layout) { l.cfg.ColumnWidth = w } }

// WithSpacing sets both the horizontal and the vertical spacing.
func WithSpacing(s float64) Option {
	return func(l *layout) { l.cfg.HSpacing, l.cfg.VSpacing = s, s }
}

// WithMargins sets the content margins.
func WithMargins(m Margins) Option { return func(l *layout) { l.cfg.Margins = m } }

// WithHAdapt sets the horizontal adaptation strategy.
func WithHAdapt(h HAdapt) Option { return func(l *layout) { l.cfg.HAdapt = h } }

// WithVExpand sets the vertical expansion strategy.
func WithVExpand(v VExpand) Option { return func(l *layout) { l.cfg.VExpand = v } }

// WithOverflow sets the overflow strategy.
func WithOverflow(o Overflow) Option { return func(l *layout) { l.cfg.Overflow = o } }

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option { return func(l *layout) { l.cfg = c } }

// WithRand sets the source used by [RandomInsert].
func WithRand(r RandSource) Option { return func(l *layout) { l.rng = r } }

// WithSeed makes [RandomInsert] deterministic.
func WithSeed(seed uint64) Option { return func(l *layout) { l.rng = NewRand(seed) } }

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *log.Logger) Option { return func(l *layout) { l.logger = logger } }

// New creates an engine of the given kind.
func New(kind Kind, opts ...Option) (Engine, error) {
	switch kind {
	case KindBox:
		return NewBoxLayout(opts...), nil
	case KindFlow:
		return NewFlowLayout(opts...), nil
	default:
		return nil, merr.New(merr.ErrCodeInvalidEngine, "invalid engine: %q", kind)
	}
}

// layout is the state and pass orchestration shared by both engines.
type layout struct {
	kind   Kind
	cfg    Config
	rng    RandSource
	logger *log.Logger

	items    []Item
	naturals []Size
	ratios   []float64

	geometry   Rect
	size       Size
	ran        bool
	grid       Grid
	placements []Placement
}

func newLayout(kind Kind, opts []Option) layout {
	l := layout{kind: kind, cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&l)
	}
	if l.rng == nil {
		l.rng = newUnseededRand()
	}
	if l.logger == nil {
		l.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}

func (l *layout) Kind() Kind { return l.kind }

// AddItem appends item and caches its natural size and height/width ratio.
// Every later pass works from the cached natural size, so sizes fixed by
// earlier passes never compound. Items with a non-positive width are
// rejected and not appended.
func (l *layout) AddItem(item Item) error {
	if item == nil {
		return merr.New(merr.ErrCodeInvalidItem, "item cannot be nil")
	}
	hint := item.SizeHint()
	if err := merr.ValidateSize(hint.W, hint.H); err != nil {
		return err
	}
	l.items = append(l.items, item)
	l.naturals = append(l.naturals, hint)
	l.ratios = append(l.ratios, hint.H/hint.W)
	return nil
}

func (l *layout) Count() int { return len(l.items) }

func (l *layout) ItemAt(index int) (Item, bool) {
	if index < 0 || index >= len(l.items) {
		return nil, false
	}
	return l.items[index], true
}

// Ratio returns the cached ratio of the item at index.
func (l *layout) Ratio(index int) (float64, bool) {
	if index < 0 || index >= len(l.ratios) {
		return 0, false
	}
	return l.ratios[index], true
}

func (l *layout) Geometry() Rect { return l.geometry }

func (l *layout) Grid() Grid { return l.grid }

func (l *layout) SizeHint() Size {
	if !l.ran {
		return l.MinimumSize()
	}
	return l.size
}

// MinimumSize is the size a layout reports before its first pass: just the
// content margins.
func (l *layout) MinimumSize() Size {
	return Size{W: l.cfg.Margins.Horizontal(), H: l.cfg.Margins.Vertical()}
}

func (l *layout) Placements() []Placement {
	out := make([]Placement, len(l.placements))
	copy(out, l.placements)
	return out
}

func (l *layout) Config() Config { return l.cfg }
func (l *layout) SetConfig(c Config) { l.cfg = c }

func (l *layout) HorizontalAdaption() HAdapt { return l.cfg.HAdapt }
func (l *layout) SetHorizontalAdaption(h HAdapt) { l.cfg.HAdapt = h }
func (l *layout) VerticalExpansion() VExpand { return l.cfg.VExpand }
func (l *layout) SetVerticalExpansion(v VExpand) { l.cfg.VExpand = v }
func (l *layout) OverflowStrategy() Overflow { return l.cfg.Overflow }
func (l *layout) SetOverflowStrategy(o Overflow) { l.cfg.Overflow = o }
func (l *layout) HorizontalSpacing() float64 { return l.cfg.HSpacing }
func (l *layout) SetHorizontalSpacing(s float64) { l.cfg.HSpacing = s }
func (l *layout) VerticalSpacing() float64 { return l.cfg.VSpacing }
func (l *layout) SetVerticalSpacing(s float64) { l.cfg.VSpacing = s }
func (l *layout) ContentsMargins() Margins { return l.cfg.Margins }
func (l *layout) SetContentsMargins(m Margins) { l.cfg.Margins = m }
func (l *layout) SetRand(r RandSource) { l.rng = r }

// SetSpacing sets both the horizontal and the vertical spacing.
func (l *layout) SetSpacing(s float64) { l.cfg.HSpacing, l.cfg.VSpacing = s, s }

// run executes one pass over all items on the resolved grid. A failing item
// aborts the pass; items placed before it keep their new geometry.
func (l *layout) run(rect Rect, g Grid) (Size, error) {
	l.geometry = rect
	l.grid = g
	l.placements = l.placements[:0]

	p := newPass(l.cfg, g)
	l.logger.Debugf("%s pass: %d items, %d columns of %.2f (real %.2f)",
		l.kind, len(l.items), g.Count, g.Width, g.Real)

	for i, item := range l.items {
		size, err := resolveOverflow(item, l.naturals[i], g.Width, l.cfg.Overflow)
		if err != nil {
			return Size{}, merr.Wrap(merr.GetCode(err), err, "item %d", i)
		}
		column, err := selectColumn(l.cfg.VExpand, i, p.heights, l.rng)
		if err != nil {
			return Size{}, err
		}
		r, err := p.place(item, size, l.ratios[i], column)
		if err != nil {
			return Size{}, err
		}
		item.SetGeometry(r)
		l.placements = append(l.placements, Placement{Index: i, Column: column, Ratio: l.ratios[i], Rect: r})
	}

	l.size = Size{W: rect.W, H: p.tallest()}
	l.ran = true
	return l.size, nil
}

// prepare validates the configuration before a pass touches any item.
func (l *layout) prepare() error {
	if err := l.cfg.Validate(); err != nil {
		return err
	}
	return l.cfg.ValidateSpacing()
}
