package virtual

import (
	"math"

	"github.com/go-drift/vlist/pkg/errors"
)

// LayoutStrategy maps item indices to geometry along the scroll axis.
// Implementations hold no mutable state beyond their construction-time
// configuration.
type LayoutStrategy interface {
	// ItemOffset returns the start offset of item index.
	ItemOffset(index int) float64
	// ItemSize returns the extent of item index.
	ItemSize(index int) float64
	// TotalSize returns the scrollable extent for count items.
	TotalSize(count int) float64
	// VisibleRange returns the inclusive index range intersecting the window
	// [scrollOffset, scrollOffset+viewportSize). It returns an empty range
	// when count <= 0 and clamps indices to [0, count-1] otherwise.
	VisibleRange(scrollOffset, viewportSize float64, count int) Range
}

// FixedLayout lays out items of one uniform size.
type FixedLayout struct {
	itemSize float64
}

var _ LayoutStrategy = (*FixedLayout)(nil)

// NewFixedLayout returns a layout where every item is itemSize long.
// itemSize must be positive and finite.
func NewFixedLayout(itemSize float64) (*FixedLayout, error) {
	if !(itemSize > 0) || math.IsInf(itemSize, 1) {
		return nil, errors.Config("virtual.NewFixedLayout", errors.ErrInvalidItemSize)
	}
	return &FixedLayout{itemSize: itemSize}, nil
}

// ItemExtent returns the configured item size.
func (l *FixedLayout) ItemExtent() float64 {
	return l.itemSize
}

// ItemOffset returns index * itemSize.
func (l *FixedLayout) ItemOffset(index int) float64 {
	return float64(index) * l.itemSize
}

// ItemSize returns the configured item size for every index.
func (l *FixedLayout) ItemSize(int) float64 {
	return l.itemSize
}

// TotalSize returns count * itemSize.
func (l *FixedLayout) TotalSize(count int) float64 {
	return float64(count) * l.itemSize
}

// VisibleRange returns the items covering the viewport. The end index is the
// start index plus the number of item slots the viewport spans, so a
// viewport that ends exactly on an item boundary still includes the next item.
func (l *FixedLayout) VisibleRange(scrollOffset, viewportSize float64, count int) Range {
	if count <= 0 {
		return EmptyRange
	}
	last := count - 1
	start := Clamp(0, toIndex(math.Floor(scrollOffset/l.itemSize)), last)
	visibleCount := toIndex(math.Ceil(math.Max(0, viewportSize) / l.itemSize))
	end := min(last, start+visibleCount)
	return Range{StartIndex: start, EndIndex: end}
}
