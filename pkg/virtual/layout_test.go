package virtual

import (
	"math"
	"testing"

	"github.com/go-drift/vlist/pkg/errors"
)

func mustFixedLayout(t *testing.T, size float64) *FixedLayout {
	t.Helper()
	l, err := NewFixedLayout(size)
	if err != nil {
		t.Fatalf("NewFixedLayout(%v) error: %v", size, err)
	}
	return l
}

func TestNewFixedLayoutRejectsInvalidSize(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewFixedLayout(size)
		if !errors.Is(err, errors.ErrInvalidItemSize) {
			t.Errorf("NewFixedLayout(%v) error = %v, want ErrInvalidItemSize", size, err)
		}
		if errors.KindOf(err) != errors.KindConfig {
			t.Errorf("NewFixedLayout(%v) kind = %v, want config", size, errors.KindOf(err))
		}
	}
}

func TestFixedLayoutGeometry(t *testing.T) {
	l := mustFixedLayout(t, 50)
	if got := l.ItemOffset(3); got != 150 {
		t.Errorf("ItemOffset(3) = %v, want 150", got)
	}
	if got := l.ItemSize(7); got != 50 {
		t.Errorf("ItemSize(7) = %v, want 50", got)
	}
	if got := l.TotalSize(100); got != 5000 {
		t.Errorf("TotalSize(100) = %v, want 5000", got)
	}
	if got := l.ItemOffset(1000); got != 50000 {
		t.Errorf("ItemOffset past count = %v, want 50000", got)
	}
	if got := l.ItemExtent(); got != 50 {
		t.Errorf("ItemExtent() = %v, want 50", got)
	}
}

func TestFixedLayoutVisibleRange(t *testing.T) {
	l := mustFixedLayout(t, 50)
	tests := []struct {
		name     string
		offset   float64
		viewport float64
		count    int
		want     Range
	}{
		{"top of list", 0, 400, 100, Range{0, 8}},
		{"scrolled", 500, 400, 100, Range{10, 18}},
		{"fractional offset", 123.45, 400, 100, Range{2, 10}},
		{"zero viewport", 0, 0, 100, Range{0, 0}},
		{"end of list", 4800, 400, 100, Range{96, 99}},
		{"far past end", 1e6, 400, 100, Range{99, 99}},
		{"negative offset", -200, 400, 100, Range{0, 8}},
		{"negative viewport", 0, -100, 100, Range{0, 0}},
		{"single item", 0, 400, 1, Range{0, 0}},
		{"empty list", 0, 400, 0, Range{0, -1}},
		{"negative count", 0, 400, -3, Range{0, -1}},
	}
	for _, tt := range tests {
		if got := l.VisibleRange(tt.offset, tt.viewport, tt.count); got != tt.want {
			t.Errorf("%s: VisibleRange(%v, %v, %d) = %+v, want %+v", tt.name, tt.offset, tt.viewport, tt.count, got, tt.want)
		}
	}
}

func TestFixedLayoutVisibleRangeStaysInBounds(t *testing.T) {
	l := mustFixedLayout(t, 33.33)
	for count := 0; count < 40; count += 3 {
		for offset := -100.0; offset < 2000; offset += 77.7 {
			r := l.VisibleRange(offset, 250, count)
			if count == 0 {
				if !r.Empty() {
					t.Fatalf("count 0 produced non-empty range %+v", r)
				}
				continue
			}
			if r.StartIndex < 0 || r.EndIndex > count-1 || r.EndIndex < r.StartIndex {
				t.Fatalf("VisibleRange(%v, 250, %d) = %+v out of bounds", offset, count, r)
			}
		}
	}
}

func TestRangeHelpers(t *testing.T) {
	r := Range{StartIndex: 2, EndIndex: 5}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if !r.Contains(2) || !r.Contains(5) || r.Contains(6) {
		t.Error("Contains reports wrong membership")
	}
	if EmptyRange.Len() != 0 || !EmptyRange.Empty() {
		t.Error("EmptyRange should be empty")
	}
}
