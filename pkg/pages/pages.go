// Package pages tracks which pages of a paginated item source are loaded or
// in flight, and maps virtualizer ranges onto page numbers.
//
// The package performs no I/O. Hosts fetch pages however they like and
// report results back through a [Book].
package pages

import (
	"github.com/go-drift/vlist/pkg/virtual"
)

// Response is one fetched page.
type Response[T any] struct {
	Items   []T
	Total   int
	HasMore bool
}

// LoadState is the bookkeeping CanLoad and FindMissing consult.
type LoadState interface {
	Loaded(page int) bool
	Loading(page int) bool
	Total() int
	HasMore() bool
}

// CanLoad reports whether page should be requested: it must be neither
// loaded nor in flight, and must lie inside the known total.
func CanLoad(page, pageSize int, state LoadState) bool {
	if page < 0 || pageSize <= 0 {
		return false
	}
	if state.Loaded(page) || state.Loading(page) {
		return false
	}
	total := state.Total()
	if total > 0 && page*pageSize >= total {
		return false
	}
	if !state.HasMore() && page > total/pageSize {
		return false
	}
	return true
}

// FindMissing returns the pages in [first, last] that are neither loaded nor
// in flight, in ascending order.
func FindMissing(first, last int, state LoadState) []int {
	var missing []int
	for p := max(0, first); p <= last; p++ {
		if !state.Loaded(p) && !state.Loading(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// PagesFor returns the first and last page holding indices of r.
// ok is false for an empty range or a non-positive page size.
func PagesFor(r virtual.Range, pageSize int) (first, last int, ok bool) {
	if r.Empty() || pageSize <= 0 {
		return 0, -1, false
	}
	return max(0, r.StartIndex) / pageSize, max(0, r.EndIndex) / pageSize, true
}
