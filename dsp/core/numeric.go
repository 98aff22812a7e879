package core

import "math"

// IntRange returns the inclusive signed integer range of a PCM sample with
// the given bit depth. Depths outside [2, 32] are treated as 16-bit.
func IntRange(bitDepth int) (min, max int) {
	if bitDepth < 2 || bitDepth > 32 {
		bitDepth = 16
	}
	max = 1<<(bitDepth-1) - 1
	return -max - 1, max
}

// FullScale returns the positive full-scale magnitude for bitDepth, i.e. 2^(bitDepth-1).
func FullScale(bitDepth int) float64 {
	_, max := IntRange(bitDepth)
	return float64(max) + 1
}

// SaturateInt rounds x half away from zero and clips it to the integer
// range of bitDepth. NaN maps to 0.
func SaturateInt(x float64, bitDepth int) int {
	if math.IsNaN(x) {
		return 0
	}
	min, max := IntRange(bitDepth)
	r := math.Round(x)
	if r <= float64(min) {
		return min
	}
	if r >= float64(max) {
		return max
	}
	return int(r)
}

// RoundDiv returns round(num/den) for num >= 0, den > 0, rounding halves up,
// using integer arithmetic only.
func RoundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
