package virtual

import (
	"github.com/go-drift/vlist/pkg/errors"
)

// Virtualizer keeps a State in sync with a ScrollSource, a LayoutStrategy and
// the current item count.
type Virtualizer struct {
	count    int
	overscan int
	plugins  []Plugin
	onChange func(State)

	layout LayoutStrategy
	source ScrollSource

	state       State
	unsubscribe func()
	items       itemCache
	destroyed   bool
}

// itemCache remembers the last materialized render range. It is cleared
// explicitly when a plugin is added or the count changes.
type itemCache struct {
	valid bool
	key   Range
	items []VirtualItem
}

func (c *itemCache) lookup(r Range) ([]VirtualItem, bool) {
	if c.valid && c.key == r {
		return c.items, true
	}
	return nil, false
}

func (c *itemCache) store(r Range, items []VirtualItem) {
	c.valid = true
	c.key = r
	c.items = items
}

func (c *itemCache) invalidate() {
	*c = itemCache{}
}

// New creates a Virtualizer, computes its initial state and subscribes to
// source. The initial computation runs neither plugins nor OnChange.
func New(layout LayoutStrategy, source ScrollSource, opts Options) (*Virtualizer, error) {
	if opts.Count < 0 {
		return nil, errors.Config("virtual.New", errors.ErrNegativeCount)
	}
	overscan := DefaultOverscan
	if opts.Overscan != nil {
		overscan = *opts.Overscan
	}
	if overscan < 0 {
		return nil, errors.Config("virtual.New", errors.ErrNegativeOverscan)
	}

	v := &Virtualizer{
		count:    opts.Count,
		overscan: overscan,
		onChange: opts.OnChange,
		layout:   layout,
		source:   source,
	}
	v.state = v.calculateState()
	v.unsubscribe = source.Subscribe(func(float64) {
		v.update()
	})
	return v, nil
}

// State returns the current snapshot.
func (v *Virtualizer) State() State {
	return v.state
}

// Count returns the current item count.
func (v *Virtualizer) Count() int {
	return v.count
}

// Overscan returns the configured overscan.
func (v *Virtualizer) Overscan() int {
	return v.overscan
}

// Plugins returns the names of the registered plugins in order.
func (v *Virtualizer) Plugins() []string {
	names := make([]string, len(v.plugins))
	for i, p := range v.plugins {
		names[i] = p.Name
	}
	return names
}

// Destroyed reports whether Destroy has been called.
func (v *Virtualizer) Destroyed() bool {
	return v.destroyed
}

// AddPlugin appends p, runs its OnInit hook and drops the cached items so the
// next update rebuilds them. The new plugin takes effect on the next update.
func (v *Virtualizer) AddPlugin(p Plugin) error {
	if v.destroyed {
		return errors.Destroyed("virtual.AddPlugin")
	}
	v.plugins = append(v.plugins, p)
	if p.OnInit != nil {
		p.OnInit()
	}
	v.items.invalidate()
	return nil
}

// SetCount changes the item count and updates the state. Setting the current
// count is a no-op.
func (v *Virtualizer) SetCount(count int) error {
	if v.destroyed {
		return errors.Destroyed("virtual.SetCount")
	}
	if count < 0 {
		return errors.Config("virtual.SetCount", errors.ErrNegativeCount)
	}
	if count == v.count {
		return nil
	}
	v.count = count
	v.items.invalidate()
	v.update()
	return nil
}

// Update recomputes the state, runs the state hooks and calls OnChange.
func (v *Virtualizer) Update() error {
	if v.destroyed {
		return errors.Destroyed("virtual.Update")
	}
	v.update()
	return nil
}

func (v *Virtualizer) update() {
	state := v.calculateState()
	for _, p := range v.plugins {
		if p.BeforeStateChange == nil {
			continue
		}
		if next, ok := p.BeforeStateChange(state); ok {
			state = next
		}
	}

	v.state = state

	for _, p := range v.plugins {
		if p.AfterStateChange != nil {
			p.AfterStateChange(v.state)
		}
	}
	if v.onChange != nil {
		v.onChange(v.state)
	}
}

// Destroy unsubscribes from the scroll source and runs every OnDestroy hook.
// Calling Destroy again has no effect.
func (v *Virtualizer) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	for _, p := range v.plugins {
		if p.OnDestroy != nil {
			p.OnDestroy()
		}
	}
}

func (v *Virtualizer) calculateState() State {
	scrollOffset := v.source.ScrollOffset()
	viewportSize := v.source.ViewportSize()
	totalSize := v.layout.TotalSize(v.count)

	visible := v.layout.VisibleRange(scrollOffset, viewportSize, v.count)

	render := Range{
		StartIndex: max(0, visible.StartIndex-v.overscan),
		EndIndex:   min(v.count-1, visible.EndIndex+v.overscan),
	}
	for _, p := range v.plugins {
		if p.OnRangeCalculated != nil {
			render = p.OnRangeCalculated(visible, v.count)
		}
	}

	items, ok := v.items.lookup(render)
	if !ok {
		items = v.buildItems(render)
		v.items.store(render, items)
	}

	return State{
		ScrollOffset: scrollOffset,
		ViewportSize: viewportSize,
		TotalSize:    totalSize,
		VisibleRange: visible,
		RenderRange:  render,
		VirtualItems: items,
	}
}

func (v *Virtualizer) buildItems(r Range) []VirtualItem {
	items := make([]VirtualItem, 0, r.Len())
	for i := r.StartIndex; i <= r.EndIndex; i++ {
		start := v.layout.ItemOffset(i)
		size := v.layout.ItemSize(i)
		items = append(items, VirtualItem{
			Index: i,
			Start: start,
			Size:  size,
			End:   start + size,
		})
	}
	return items
}
