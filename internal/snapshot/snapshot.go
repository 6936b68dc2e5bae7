// Package snapshot converts virtualizer states into serializable records and
// writes them as colored text, YAML or MessagePack.
package snapshot

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/go-drift/vlist/pkg/virtual"
)

// Snapshot is one virtualizer state captured during a plan.
type Snapshot struct {
	Name         string  `yaml:"name" msgpack:"name"`
	Step         uint32  `yaml:"step" msgpack:"step"`
	ScrollOffset float64 `yaml:"scroll_offset" msgpack:"scroll_offset"`
	ViewportSize float64 `yaml:"viewport_size" msgpack:"viewport_size"`
	TotalSize    float64 `yaml:"total_size" msgpack:"total_size"`
	Visible      Span    `yaml:"visible" msgpack:"visible"`
	Render       Span    `yaml:"render" msgpack:"render"`
	ItemCount    uint32  `yaml:"item_count" msgpack:"item_count"`
	Items        []Item  `yaml:"items,omitempty" msgpack:"items,omitempty"`
}

// Span is an inclusive index interval. An empty interval has End < Start.
type Span struct {
	Start int `yaml:"start" msgpack:"start"`
	End   int `yaml:"end" msgpack:"end"`
}

// Item is the geometry of one materialized item.
type Item struct {
	Index int     `yaml:"index" msgpack:"index"`
	Start float64 `yaml:"start" msgpack:"start"`
	Size  float64 `yaml:"size" msgpack:"size"`
}

func spanOf(r virtual.Range) Span {
	return Span{Start: r.StartIndex, End: r.EndIndex}
}

// Empty reports whether s holds no indices.
func (s Span) Empty() bool {
	return s.End < s.Start
}

// FromState captures state as step of the plan called name.
func FromState(name string, step int, state virtual.State) (Snapshot, error) {
	st, err := safecast.Conv[uint32](step)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot step %d: %w", step, err)
	}
	count, err := safecast.Conv[uint32](len(state.VirtualItems))
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot item count: %w", err)
	}
	items := make([]Item, len(state.VirtualItems))
	for i, it := range state.VirtualItems {
		items[i] = Item{Index: it.Index, Start: it.Start, Size: it.Size}
	}
	return Snapshot{
		Name:         name,
		Step:         st,
		ScrollOffset: state.ScrollOffset,
		ViewportSize: state.ViewportSize,
		TotalSize:    state.TotalSize,
		Visible:      spanOf(state.VisibleRange),
		Render:       spanOf(state.RenderRange),
		ItemCount:    count,
		Items:        items,
	}, nil
}
