package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return 5")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return 10")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}

func TestFrac(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"positive", 3.25, 0.25},
		{"negative", -0.25, 0.75},
		{"negative whole", -2, 0},
		{"tiny negative", -1e-18, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Frac(tc.in)
			if math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("Frac(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
			if got < 0 || got >= 1 {
				t.Errorf("Frac(%v) = %v, outside [0, 1)", tc.in, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		x, n     float64
		expected float64
	}{
		{"inside", 3.5, 8, 3.5},
		{"one lap", 9, 8, 1},
		{"many laps", 8*5 + 2, 8, 2},
		{"negative", -1, 8, 7},
		{"negative many laps", -8*3 - 0.5, 8, 7.5},
		{"exact multiple", 16, 8, 0},
		{"negative exact multiple", -16, 8, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.x, tc.n)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Wrap(%v, %v) = %v, expected %v", tc.x, tc.n, got, tc.expected)
			}
		})
	}
}

func TestWrapAccumulatedSteps(t *testing.T) {
	// Accumulate fractional steps in both directions, including steps
	// larger than the wrap size, and verify the result always indexes
	// into [0, n).
	const n = 16.0
	for _, step := range []float64{0.37, -0.37, 1.9, -1.9, 23.3, -23.3} {
		pos := 0.0
		for i := 0; i < 1000; i++ {
			pos = Wrap(pos+step, n)
			idx := int(pos)
			if idx < 0 || idx >= int(n) {
				t.Fatalf("step %v: index %d out of range after %d steps", step, idx, i)
			}
		}
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, n, expected int
	}{
		{5, 4, 1},
		{-1, 4, 3},
		{-8, 4, 0},
		{0, 4, 0},
	}

	for _, tc := range tests {
		if got := WrapIndex(tc.i, tc.n); got != tc.expected {
			t.Errorf("WrapIndex(%d, %d) = %d, expected %d", tc.i, tc.n, got, tc.expected)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in       float64
		expected int
	}{
		{1.5, 2},
		{-1.5, -1},
		{2.49, 2},
		{-0.2, 0},
	}

	for _, tc := range tests {
		if got := RoundHalfUp(tc.in); got != tc.expected {
			t.Errorf("RoundHalfUp(%v) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
