// Package virtual computes which items of a large list must be materialized
// for the current scroll position.
//
// A [Virtualizer] combines three collaborators:
//
//   - a [LayoutStrategy] that maps item indices to geometry and reports the
//     visible index range for a viewport ([FixedLayout] for uniform items),
//   - a [ScrollSource] that owns the scroll offset and viewport size and
//     notifies subscribers when they change ([VirtualScrollSource] is a
//     headless implementation driven by the host),
//   - an ordered list of [Plugin] hooks that may replace the render range or
//     the final [State].
//
// Data flows in one direction: a scroll source change triggers
// [Virtualizer.Update], which asks the layout for the visible range, expands
// it by the overscan, runs the plugin pipeline, materializes the
// [VirtualItem] list and publishes the resulting [State].
//
// # Basic Usage
//
//	layout, err := virtual.NewFixedLayout(50)
//	if err != nil {
//	    return err
//	}
//	source := virtual.NewVirtualScrollSource()
//	v, err := virtual.New(layout, source, virtual.Options{
//	    Count:    1000,
//	    Overscan: virtual.Overscan(2),
//	    OnChange: func(s virtual.State) { render(s.VirtualItems) },
//	})
//	if err != nil {
//	    return err
//	}
//	defer v.Destroy()
//
//	source.SetViewportSize(400)
//	source.SetScrollOffset(500)
//
// # Item Stability
//
// When the render range is unchanged between two recomputations the
// Virtualizer hands out the same VirtualItems slice again. Consumers can
// compare the backing arrays to skip redundant work, and must never modify
// the slice in place.
//
// # Threading
//
// Virtualizer and VirtualScrollSource are not safe for concurrent use. All
// calls, including scroll source mutations, must happen on the same goroutine
// (typically the host's UI or event loop).
package virtual
