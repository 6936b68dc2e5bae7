package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/vlist/pkg/pages"
)

// Loader fetches one page of item labels.
type Loader func(ctx context.Context, page, pageSize int) (pages.Response[string], error)

// SyntheticLoader serves total generated labels, sleeping delay per page to
// mimic a remote source.
func SyntheticLoader(total int, delay time.Duration) Loader {
	return func(ctx context.Context, page, pageSize int) (pages.Response[string], error) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return pages.Response[string]{}, ctx.Err()
			case <-timer.C:
			}
		}
		start := page * pageSize
		end := min(total, start+pageSize)
		var items []string
		for i := start; i < end; i++ {
			items = append(items, fmt.Sprintf("item %d", i))
		}
		return pages.Response[string]{
			Items:   items,
			Total:   total,
			HasMore: end < total,
		}, nil
	}
}
