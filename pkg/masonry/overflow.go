package masonry

import (
	"math"

	merr "github.com/matzehuels/masonry/pkg/errors"
)

// resolveOverflow coerces an item of the given natural size to the column
// width according to policy and returns the size the pass should use.
// It only acts when the natural width differs from columnWidth; the
// comparison is exact, so near-equal widths still count as overflowing.
func resolveOverflow(item Item, natural Size, columnWidth float64, policy Overflow) (Size, error) {
	if natural.W == columnWidth {
		clearFixedSize(item)
		return natural, nil
	}

	switch policy {
	case Ignore:
		clearFixedSize(item)
		return natural, nil
	case AutoZoom:
		if natural.W <= 0 {
			return Size{}, merr.New(merr.ErrCodeInvalidItem, "cannot rescale item with width %v", natural.W)
		}
		s := Size{W: columnWidth, H: math.Trunc(natural.H * columnWidth / natural.W)}
		item.SetFixedSize(s)
		return s, nil
	case AutoCrop:
		s := Size{W: columnWidth, H: natural.H}
		item.SetFixedSize(s)
		return s, nil
	default:
		return Size{}, invalidStrategy("overflow", int(policy))
	}
}

// fixedSizeClearer is implemented by items that can drop a size override.
type fixedSizeClearer interface {
	ClearFixedSize()
}

// clearFixedSize drops an override left by an earlier pass, if item
// supports it.
func clearFixedSize(item Item) {
	if c, ok := item.(fixedSizeClearer); ok {
		c.ClearFixedSize()
	}
}
