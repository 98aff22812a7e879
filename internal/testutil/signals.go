package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Round converts a float signal to integer samples, rounding half away from zero.
func Round(x []float64) []int {
	out := make([]int, len(x))
	for i, v := range x {
		out[i] = int(math.Round(v))
	}
	return out
}

// PCMSine generates a rounded integer sine wave.
func PCMSine(freqHz, sampleRate, amplitude float64, length int) []int {
	return Round(DeterministicSine(freqHz, sampleRate, amplitude, length))
}

// PCMNoise generates rounded white noise with a fixed seed.
func PCMNoise(seed int64, amplitude float64, length int) []int {
	return Round(DeterministicNoise(seed, amplitude, length))
}

// Alternating returns +amplitude, -amplitude, ... which is pure Nyquist content.
func Alternating(amplitude, length int) []int {
	out := make([]int, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out
}

// DC generates a constant-valued integer signal.
func DC(value, length int) []int {
	out := make([]int, length)
	for i := range out {
		out[i] = value
	}
	return out
}
