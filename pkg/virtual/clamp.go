package virtual

import (
	"cmp"
	"math"
)

// Clamp constrains value between min and max bounds.
// When min > max, values below min yield min and values above max yield max.
func Clamp[T cmp.Ordered](min, value, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

const maxIndex = math.MaxInt32

// toIndex converts a floored or ceiled float to an int index, saturating
// instead of overflowing. NaN maps to 0.
func toIndex(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f > maxIndex:
		return maxIndex
	case f < -maxIndex:
		return -maxIndex
	}
	return int(f)
}
