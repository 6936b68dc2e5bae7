package virtual

import (
	"fmt"

	"github.com/go-drift/vlist/pkg/errors"
)

// Plugin is a table of optional hooks run by a Virtualizer. A nil field means
// the plugin does not implement that hook. Hooks run in registration order.
//
// Plugins have no reference to the Virtualizer and must not call back into
// it from a hook.
type Plugin struct {
	// Name identifies the plugin in diagnostics.
	Name string

	// OnInit is called once when the plugin is added.
	OnInit func()

	// OnRangeCalculated replaces the render range. Every plugin receives the
	// original visible range, not the previous plugin's result, so the last
	// plugin implementing this hook decides the render range.
	OnRangeCalculated func(visible Range, count int) Range

	// BeforeStateChange may return a replacement state with ok set to true.
	// Replacements compose: each plugin sees the previous plugin's result.
	BeforeStateChange func(state State) (next State, ok bool)

	// AfterStateChange observes the final state of an update.
	AfterStateChange func(state State)

	// OnDestroy is called once when the Virtualizer is destroyed.
	OnDestroy func()
}

// OverscanPlugin returns a plugin that expands the visible range by overscan
// items on both edges, clamped to [0, count-1]. Negative values are treated
// as zero; use DefaultOverscan for the conventional default.
func OverscanPlugin(overscan int) Plugin {
	overscan = max(0, overscan)
	return Plugin{
		Name: "overscan",
		OnRangeCalculated: func(visible Range, count int) Range {
			return Range{
				StartIndex: max(0, visible.StartIndex-overscan),
				EndIndex:   min(count-1, visible.EndIndex+overscan),
			}
		},
	}
}

// Isolate wraps every hook of p so that a panic is reported through
// errors.ReportPanic instead of aborting the update. A panicking hook falls
// back to its neutral result: OnRangeCalculated returns the visible range
// unchanged and BeforeStateChange keeps the current state.
//
// A non-empty render range reaching outside [0, count-1] is reported through
// errors.Report as a KindPlugin error wrapping errors.ErrRangeOutOfBounds and
// replaced by the visible range.
func Isolate(p Plugin) Plugin {
	out := Plugin{Name: p.Name}
	if p.OnInit != nil {
		out.OnInit = func() {
			defer recoverHook(p.Name, "plugin.OnInit")
			p.OnInit()
		}
	}
	if p.OnRangeCalculated != nil {
		out.OnRangeCalculated = func(visible Range, count int) (r Range) {
			r = visible
			defer recoverHook(p.Name, "plugin.OnRangeCalculated")
			got := p.OnRangeCalculated(visible, count)
			if !got.Empty() && (got.StartIndex < 0 || got.EndIndex >= count) {
				errors.Report(errors.Plugin("plugin.OnRangeCalculated",
					fmt.Errorf("%s returned %d-%d for %d items: %w", p.Name, got.StartIndex, got.EndIndex, count, errors.ErrRangeOutOfBounds)))
				return visible
			}
			return got
		}
	}
	if p.BeforeStateChange != nil {
		out.BeforeStateChange = func(state State) (next State, ok bool) {
			next = state
			defer recoverHook(p.Name, "plugin.BeforeStateChange")
			return p.BeforeStateChange(state)
		}
	}
	if p.AfterStateChange != nil {
		out.AfterStateChange = func(state State) {
			defer recoverHook(p.Name, "plugin.AfterStateChange")
			p.AfterStateChange(state)
		}
	}
	if p.OnDestroy != nil {
		out.OnDestroy = func() {
			defer recoverHook(p.Name, "plugin.OnDestroy")
			p.OnDestroy()
		}
	}
	return out
}

func recoverHook(plugin, op string) {
	if r := recover(); r != nil {
		errors.ReportPanic(&errors.PanicError{
			Op:         op,
			Plugin:     plugin,
			Value:      r,
			StackTrace: errors.CaptureStack(),
		})
	}
}
