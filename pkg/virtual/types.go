package virtual

// DefaultOverscan is the number of extra items rendered beyond each edge of
// the visible range when Options.Overscan is nil.
const DefaultOverscan = 4

// Range is an inclusive index interval. An empty range has
// EndIndex == StartIndex-1, e.g. {0, -1} for an empty list.
type Range struct {
	StartIndex int
	EndIndex   int
}

// EmptyRange is the range reported for a list without items.
var EmptyRange = Range{StartIndex: 0, EndIndex: -1}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.EndIndex < r.StartIndex {
		return 0
	}
	return r.EndIndex - r.StartIndex + 1
}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool {
	return r.EndIndex < r.StartIndex
}

// Contains reports whether index lies inside the range.
func (r Range) Contains(index int) bool {
	return index >= r.StartIndex && index <= r.EndIndex
}

// VirtualItem is the geometry of one materialized item along the scroll axis.
// End is always Start + Size.
type VirtualItem struct {
	Index int
	Start float64
	Size  float64
	End   float64
}

// State is a snapshot produced by every Virtualizer update.
type State struct {
	ScrollOffset float64
	ViewportSize float64
	// TotalSize is the layout's content extent for the current count.
	TotalSize float64
	// VisibleRange holds the indices intersecting the viewport.
	VisibleRange Range
	// RenderRange is VisibleRange expanded by the overscan, or the range
	// chosen by a plugin.
	RenderRange Range
	// VirtualItems holds one entry per index of RenderRange. The slice is
	// shared with the Virtualizer and must be treated as read-only.
	VirtualItems []VirtualItem
}

// Options configures a Virtualizer.
type Options struct {
	// Count is the number of logical items. Must not be negative.
	Count int
	// Overscan is the number of extra items rendered beyond each edge of the
	// visible range. Nil selects DefaultOverscan.
	Overscan *int
	// OnChange is called synchronously at the end of every update.
	OnChange func(State)
}

// Overscan returns a pointer to n for use in Options.
func Overscan(n int) *int {
	return &n
}
