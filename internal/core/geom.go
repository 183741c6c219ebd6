// Package core provides the fundamental value types shared by the renderer,
// the world model and the presentation layers: vectors, numeric helpers,
// packed colors, input intents and the pixel buffer.
// It has no external dependencies so the rendering pipeline stays pure and testable.
package core

import "math"

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Frac returns the fractional part of x in [0, 1), also for negative x.
func Frac(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		// x was a tiny negative number and the subtraction rounded up.
		return 0
	}
	return f
}

// Wrap returns x modulo n as a floor-based, non-negative value in [0, n).
// n must be positive.
func Wrap(x, n float64) float64 {
	r := math.Mod(x, n)
	if r < 0 {
		r += n
	}
	if r >= n {
		return 0
	}
	return r
}

// WrapIndex returns i modulo n in [0, n). n must be positive.
func WrapIndex(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// RoundHalfUp rounds to the nearest integer, ties toward positive infinity.
// Screen edges use it so that mirrored values land on mirrored pixels.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
