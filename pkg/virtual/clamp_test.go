package virtual

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		min, value, max float64
		want            float64
	}{
		{"within", 0, 5, 10, 5},
		{"at min", 0, 0, 10, 0},
		{"at max", 0, 10, 10, 10},
		{"below", 0, -5, 10, 0},
		{"below offset range", 10, 5, 20, 10},
		{"below negative range", -10, -20, 0, -10},
		{"above", 0, 15, 10, 10},
		{"above negative range", -10, 5, 0, 0},
		{"degenerate", 5, 5, 5, 5},
		{"negative degenerate", -5, -5, -5, -5},
		{"negative within", -10, -5, -1, -5},
		{"negative above", -10, 0, -1, -1},
		{"fraction within", 0, 3.14, 10, 3.14},
		{"fraction below", 0.5, 0.3, 1.0, 0.5},
		{"fraction above", 0.5, 1.5, 1.0, 1.0},
		{"inverted bounds below", 10, 2, 5, 10},
		{"inverted bounds above", 10, 12, 5, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.min, tt.value, tt.max); got != tt.want {
			t.Errorf("%s: Clamp(%v, %v, %v) = %v, want %v", tt.name, tt.min, tt.value, tt.max, got, tt.want)
		}
	}
}

func TestClampInts(t *testing.T) {
	if got := Clamp(0, -3, 9); got != 0 {
		t.Errorf("Clamp(0, -3, 9) = %d, want 0", got)
	}
	if got := Clamp(0, 30, 9); got != 9 {
		t.Errorf("Clamp(0, 30, 9) = %d, want 9", got)
	}
}

func TestClampStaysInBounds(t *testing.T) {
	for lo := -20; lo <= 20; lo += 5 {
		for hi := lo; hi <= 30; hi += 7 {
			for v := -40; v <= 40; v++ {
				got := Clamp(lo, v, hi)
				if got < lo || got > hi {
					t.Fatalf("Clamp(%d, %d, %d) = %d outside bounds", lo, v, hi, got)
				}
			}
		}
	}
}

func TestToIndexSaturates(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{3, 3},
		{-2, -2},
		{math.NaN(), 0},
		{math.Inf(1), maxIndex},
		{math.Inf(-1), -maxIndex},
		{1e300, maxIndex},
	}
	for _, tt := range tests {
		if got := toIndex(tt.in); got != tt.want {
			t.Errorf("toIndex(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
