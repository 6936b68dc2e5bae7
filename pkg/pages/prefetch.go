package pages

import (
	"github.com/go-drift/vlist/pkg/virtual"
)

// PrefetchPlugin returns a virtualizer plugin that asks for the pages
// covering the render range, widened by prefetch pages on each side.
// request is called once per page that book accepts for loading, in
// ascending page order; the host performs the fetch and reports back with
// Book.Put or Book.Fail.
//
// An empty render range (no items known yet) requests page 0 so the first
// page can report the total.
func PrefetchPlugin[T any](book *Book[T], prefetch int, request func(page int)) virtual.Plugin {
	prefetch = max(0, prefetch)
	return virtual.Plugin{
		Name: "prefetch",
		AfterStateChange: func(state virtual.State) {
			first, last, ok := PagesFor(state.RenderRange, book.PageSize())
			if !ok {
				first, last = 0, 0
			} else {
				first, last = max(0, first-prefetch), last+prefetch
			}
			for _, page := range FindMissing(first, last, book) {
				if book.MarkLoading(page) {
					request(page)
				}
			}
		},
	}
}
