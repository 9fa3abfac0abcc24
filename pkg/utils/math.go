package utils

import "math"

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min3 returns the minimum of three integers.
func Min3(a, b, c int) int {
	return Min(a, Min(b, c))
}

// Clamp bounds value to [low, high].
func Clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// ClampFloat bounds value to [low, high].
func ClampFloat(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}

// Abs returns the absolute value of an integer.
func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// RoundToNearest100 rounds a population-like quantity to the nearest hundred.
func RoundToNearest100(value float64) int {
	return int(math.Round(value/100)) * 100
}

// RoundToNearest100Int rounds an integer to the nearest hundred.
func RoundToNearest100Int(value int) int {
	return RoundToNearest100(float64(value))
}

// CeilDiv divides a by b rounding up. b must be positive.
func CeilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
