package virtual

import "math"

// directionalBoost scales the overscan on the edge the viewport moves toward.
const directionalBoost = 1.5

// Direction is the scroll direction between two consecutive offsets.
type Direction int

const (
	// DirectionNone means no previous offset or an unchanged offset.
	DirectionNone Direction = iota
	// DirectionBackward means the offset decreased (scrolling up or left).
	DirectionBackward
	// DirectionForward means the offset increased (scrolling down or right).
	DirectionForward
)

func (d Direction) String() string {
	switch d {
	case DirectionBackward:
		return "backward"
	case DirectionForward:
		return "forward"
	default:
		return "none"
	}
}

// DirectionOf classifies the move from prev to current.
func DirectionOf(prev, current float64) Direction {
	switch {
	case current < prev:
		return DirectionBackward
	case current > prev:
		return DirectionForward
	default:
		return DirectionNone
	}
}

// VirtualRange is the result of CalculateVirtualRange.
type VirtualRange struct {
	StartIndex  int
	EndIndex    int
	RenderStart int
	RenderEnd   int
}

// Visible returns the visible part as a Range.
func (r VirtualRange) Visible() Range {
	return Range{StartIndex: r.StartIndex, EndIndex: r.EndIndex}
}

// Render returns the overscan-expanded part as a Range.
func (r VirtualRange) Render() Range {
	return Range{StartIndex: r.RenderStart, EndIndex: r.RenderEnd}
}

// CalculateVirtualRange computes the visible range of a fixed-size list and
// an overscan-expanded render range. The edge the viewport moves toward gets
// 1.5x the overscan; the trailing edge keeps the base value.
//
// StartIndex is only clamped below at 0, while EndIndex and RenderEnd never
// exceed totalCount-1. An empty list yields EndIndex == RenderEnd == -1, as
// does a non-positive or NaN itemSize.
func CalculateVirtualRange(scrollOffset, viewportSize, itemSize float64, totalCount, overscan int, dir Direction) VirtualRange {
	if !(itemSize > 0) {
		return VirtualRange{StartIndex: 0, EndIndex: -1, RenderStart: 0, RenderEnd: -1}
	}
	overscan = max(0, overscan)

	startIndex := max(0, toIndex(math.Floor(scrollOffset/itemSize)))
	endIndex := min(totalCount-1, startIndex+toIndex(math.Ceil(viewportSize/itemSize)))

	overscanStart := float64(overscan)
	overscanEnd := float64(overscan)
	switch dir {
	case DirectionBackward:
		overscanStart *= directionalBoost
	case DirectionForward:
		overscanEnd *= directionalBoost
	}

	renderStart := max(0, toIndex(math.Floor(float64(startIndex)-overscanStart)))
	renderEnd := min(totalCount-1, toIndex(math.Ceil(float64(endIndex)+overscanEnd)))

	return VirtualRange{
		StartIndex:  startIndex,
		EndIndex:    endIndex,
		RenderStart: renderStart,
		RenderEnd:   renderEnd,
	}
}
