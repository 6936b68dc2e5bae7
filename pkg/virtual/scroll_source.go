package virtual

// ScrollSource reports where the viewport is scrolled to and how large it is.
type ScrollSource interface {
	// ScrollOffset returns the current scroll offset.
	ScrollOffset() float64
	// ViewportSize returns the current viewport extent.
	ViewportSize() float64
	// SetScrollOffset moves the viewport.
	SetScrollOffset(offset float64)
	// Subscribe registers a callback invoked with the current scroll offset
	// on every change. The returned function removes exactly that callback.
	Subscribe(callback func(offset float64)) (unsubscribe func())
}

// VirtualScrollSource is a headless ScrollSource whose values are pushed by
// the host (terminal resize, key presses, platform scroll events).
//
// Both setters notify subscribers only when the stored value changes, in
// subscription order. The zero value is ready to use.
type VirtualScrollSource struct {
	scrollOffset   float64
	viewportSize   float64
	listeners      []scrollListener
	nextListenerID int
}

type scrollListener struct {
	id int
	fn func(float64)
}

var _ ScrollSource = (*VirtualScrollSource)(nil)

// NewVirtualScrollSource returns a source at offset 0 with an empty viewport.
func NewVirtualScrollSource() *VirtualScrollSource {
	return &VirtualScrollSource{}
}

// ScrollOffset returns the current scroll offset.
func (s *VirtualScrollSource) ScrollOffset() float64 {
	return s.scrollOffset
}

// ViewportSize returns the current viewport extent.
func (s *VirtualScrollSource) ViewportSize() float64 {
	return s.viewportSize
}

// SetScrollOffset stores offset and notifies subscribers if it changed.
func (s *VirtualScrollSource) SetScrollOffset(offset float64) {
	if offset == s.scrollOffset {
		return
	}
	s.scrollOffset = offset
	s.notifyListeners()
}

// SetViewportSize stores size and notifies subscribers if it changed.
func (s *VirtualScrollSource) SetViewportSize(size float64) {
	if size == s.viewportSize {
		return
	}
	s.viewportSize = size
	s.notifyListeners()
}

// Subscribe registers callback. A nil callback is ignored.
func (s *VirtualScrollSource) Subscribe(callback func(offset float64)) func() {
	if callback == nil {
		return func() {}
	}
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, scrollListener{id: id, fn: callback})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of active subscriptions.
func (s *VirtualScrollSource) Listeners() int {
	return len(s.listeners)
}

func (s *VirtualScrollSource) notifyListeners() {
	if len(s.listeners) == 0 {
		return
	}
	// Iterate over a copy so callbacks may unsubscribe during delivery.
	listeners := make([]scrollListener, len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		l.fn(s.scrollOffset)
	}
}
