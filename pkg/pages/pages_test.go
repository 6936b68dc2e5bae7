package pages

import (
	"testing"

	"github.com/go-drift/vlist/pkg/virtual"
)

func bookWith(pageSize int, loaded, loading []int, total int, hasMore bool) *Book[int] {
	b := NewBook[int](pageSize)
	for _, p := range loaded {
		b.pages[p] = make([]int, pageSize)
	}
	for _, p := range loading {
		b.loading[p] = struct{}{}
	}
	b.total = total
	b.hasMore = hasMore
	return b
}

func TestCanLoad(t *testing.T) {
	tests := []struct {
		name string
		page int
		book *Book[int]
		want bool
	}{
		{"fresh book", 0, bookWith(10, nil, nil, 0, true), true},
		{"already loaded", 1, bookWith(10, []int{1}, nil, 100, true), false},
		{"in flight", 2, bookWith(10, nil, []int{2}, 100, true), false},
		{"beyond total", 10, bookWith(10, nil, nil, 100, true), false},
		{"last page", 9, bookWith(10, nil, nil, 100, true), true},
		{"no more data past last page", 3, bookWith(10, nil, nil, 25, false), false},
		{"no more data on last partial page", 2, bookWith(10, nil, nil, 25, false), true},
		{"negative page", -1, bookWith(10, nil, nil, 0, true), false},
		{"zero page size", 0, bookWith(0, nil, nil, 0, true), false},
	}
	for _, tt := range tests {
		if got := CanLoad(tt.page, tt.book.PageSize(), tt.book); got != tt.want {
			t.Errorf("%s: CanLoad(%d) = %v, want %v", tt.name, tt.page, got, tt.want)
		}
	}
}

func TestFindMissing(t *testing.T) {
	b := bookWith(10, []int{0, 3}, []int{2}, 100, true)
	got := FindMissing(0, 5, b)
	want := []int{1, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("FindMissing = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FindMissing = %v, want %v", got, want)
		}
	}
	if got := FindMissing(4, 3, b); len(got) != 0 {
		t.Errorf("inverted interval = %v, want none", got)
	}
}

func TestPagesFor(t *testing.T) {
	tests := []struct {
		r           virtual.Range
		size        int
		first, last int
		ok          bool
	}{
		{virtual.Range{StartIndex: 0, EndIndex: 9}, 10, 0, 0, true},
		{virtual.Range{StartIndex: 8, EndIndex: 31}, 10, 0, 3, true},
		{virtual.EmptyRange, 10, 0, -1, false},
		{virtual.Range{StartIndex: 0, EndIndex: 5}, 0, 0, -1, false},
	}
	for _, tt := range tests {
		first, last, ok := PagesFor(tt.r, tt.size)
		if first != tt.first || last != tt.last || ok != tt.ok {
			t.Errorf("PagesFor(%+v, %d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.r, tt.size, first, last, ok, tt.first, tt.last, tt.ok)
		}
	}
}

func TestBookLifecycle(t *testing.T) {
	b := NewBook[string](2)
	if !b.MarkLoading(1) {
		t.Fatal("MarkLoading(1) = false on empty book")
	}
	if b.MarkLoading(1) {
		t.Error("MarkLoading should refuse a page already in flight")
	}
	if !b.Loading(1) || b.LoadingCount() != 1 {
		t.Error("page 1 should be in flight")
	}

	b.Put(1, Response[string]{Items: []string{"c", "d"}, Total: 5, HasMore: true})
	if b.Loading(1) || !b.Loaded(1) {
		t.Error("Put should move page 1 from loading to loaded")
	}
	if b.Total() != 5 || !b.HasMore() {
		t.Errorf("Total/HasMore = %d/%v, want 5/true", b.Total(), b.HasMore())
	}

	if v, ok := b.Item(3); !ok || v != "d" {
		t.Errorf("Item(3) = (%q, %v), want (d, true)", v, ok)
	}
	if _, ok := b.Item(0); ok {
		t.Error("Item(0) should be missing")
	}
	if _, ok := b.Item(-1); ok {
		t.Error("Item(-1) should be missing")
	}

	items := b.Items()
	if len(items) != 5 || items[2] != "c" || items[3] != "d" || items[0] != "" {
		t.Errorf("Items() = %q", items)
	}

	if !b.MarkLoading(2) {
		t.Fatal("MarkLoading(2) = false")
	}
	b.Fail(2)
	if b.Loading(2) || b.Loaded(2) {
		t.Error("Fail should clear the in-flight mark only")
	}

	b.Reset()
	if b.Total() != 0 || !b.HasMore() || b.Loaded(1) || len(b.Items()) != 0 {
		t.Error("Reset should forget all pages")
	}
}

func TestPrefetchPlugin(t *testing.T) {
	book := NewBook[int](10)
	var requested []int
	plugin := PrefetchPlugin(book, 1, func(page int) { requested = append(requested, page) })

	layout, err := virtual.NewFixedLayout(1)
	if err != nil {
		t.Fatal(err)
	}
	source := virtual.NewVirtualScrollSource()
	v, err := virtual.New(layout, source, virtual.Options{Count: 0, Overscan: virtual.Overscan(0)})
	if err != nil {
		t.Fatal(err)
	}
	defer v.Destroy()
	if err := v.AddPlugin(plugin); err != nil {
		t.Fatal(err)
	}

	v.Update()
	if len(requested) != 1 || requested[0] != 0 {
		t.Fatalf("empty list requested %v, want [0]", requested)
	}

	book.Put(0, Response[int]{Items: make([]int, 10), Total: 100, HasMore: true})
	requested = nil
	source.SetViewportSize(10)
	v.SetCount(book.Total())

	// render range {0, 10} covers pages 0-1, widened by one page to 0-2.
	want := []int{1, 2}
	if len(requested) != len(want) || requested[0] != want[0] || requested[1] != want[1] {
		t.Fatalf("requested %v, want %v", requested, want)
	}

	requested = nil
	source.SetScrollOffset(95)
	want = []int{8, 9}
	if len(requested) != len(want) || requested[0] != want[0] || requested[1] != want[1] {
		t.Fatalf("requested %v, want %v", requested, want)
	}
}
