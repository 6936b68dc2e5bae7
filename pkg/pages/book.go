package pages

// Book records loaded pages and pages in flight for one list.
// It is not safe for concurrent use; hosts apply results on their event loop.
type Book[T any] struct {
	pageSize int
	pages    map[int][]T
	loading  map[int]struct{}
	total    int
	hasMore  bool
}

var _ LoadState = (*Book[int])(nil)

// NewBook returns an empty book for pages of pageSize items.
func NewBook[T any](pageSize int) *Book[T] {
	return &Book[T]{
		pageSize: pageSize,
		pages:    make(map[int][]T),
		loading:  make(map[int]struct{}),
		hasMore:  true,
	}
}

// PageSize returns the number of items per page.
func (b *Book[T]) PageSize() int {
	return b.pageSize
}

// Loaded reports whether page has been stored.
func (b *Book[T]) Loaded(page int) bool {
	_, ok := b.pages[page]
	return ok
}

// Loading reports whether page is in flight.
func (b *Book[T]) Loading(page int) bool {
	_, ok := b.loading[page]
	return ok
}

// LoadingCount returns the number of pages in flight.
func (b *Book[T]) LoadingCount() int {
	return len(b.loading)
}

// Total returns the total item count reported by the latest page.
func (b *Book[T]) Total() int {
	return b.total
}

// HasMore reports whether the source said more pages exist.
func (b *Book[T]) HasMore() bool {
	return b.hasMore
}

// MarkLoading records page as in flight if CanLoad allows it and reports
// whether the caller should fetch it.
func (b *Book[T]) MarkLoading(page int) bool {
	if !CanLoad(page, b.pageSize, b) {
		return false
	}
	b.loading[page] = struct{}{}
	return true
}

// Put stores a fetched page and clears its in-flight mark.
func (b *Book[T]) Put(page int, resp Response[T]) {
	delete(b.loading, page)
	b.pages[page] = resp.Items
	b.total = max(0, resp.Total)
	b.hasMore = resp.HasMore
}

// Fail clears the in-flight mark of page so it can be requested again.
func (b *Book[T]) Fail(page int) {
	delete(b.loading, page)
}

// Item returns the item at index and whether its page has been loaded.
func (b *Book[T]) Item(index int) (T, bool) {
	var zero T
	if index < 0 || b.pageSize <= 0 {
		return zero, false
	}
	items, ok := b.pages[index/b.pageSize]
	offset := index % b.pageSize
	if !ok || offset >= len(items) {
		return zero, false
	}
	return items[offset], true
}

// Items returns a flat slice of length Total with loaded items placed at
// their indices. Entries of missing pages hold the zero value.
func (b *Book[T]) Items() []T {
	items := make([]T, b.total)
	for page, pageItems := range b.pages {
		start := page * b.pageSize
		for i, item := range pageItems {
			if idx := start + i; idx < len(items) {
				items[idx] = item
			}
		}
	}
	return items
}

// Reset forgets every page and in-flight mark.
func (b *Book[T]) Reset() {
	clear(b.pages)
	clear(b.loading)
	b.total = 0
	b.hasMore = true
}
