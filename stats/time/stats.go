// Package time summarises integer PCM signals in the time domain.
package time

import (
	"math"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Stats holds time-domain statistics of an integer PCM signal. Levels in
// dBFS are relative to the full scale of the bit depth passed to Calculate.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdBFS       float64
	Peak          int // max |x|
	PeakPos       int
	PeakdBFS      float64
	CrestFactor   float64 // peak / RMS (linear)
	ZeroCrossings int
}

// Silent reports whether the signal has no non-zero sample.
func (s Stats) Silent() bool {
	return s.Peak == 0
}

func emptyStats() Stats {
	return Stats{
		RMSdBFS:  math.Inf(-1),
		PeakdBFS: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []int, bitDepth int) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum, sumSq    float64
		peak, peakPos int
		zeroCrossings int
	)

	for i, v := range signal {
		x := float64(v)
		sum += x
		sumSq += x * x

		a := v
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && (signal[i-1] < 0) != (v < 0) && signal[i-1] != 0 && v != 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	fs := core.FullScale(bitDepth)

	var crest float64
	if rms > 0 {
		crest = float64(peak) / rms
	}

	return Stats{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		RMSdBFS:       core.LinearToDB(rms / fs),
		Peak:          peak,
		PeakPos:       peakPos,
		PeakdBFS:      core.LinearToDB(float64(peak) / fs),
		CrestFactor:   crest,
		ZeroCrossings: zeroCrossings,
	}
}

// Peak returns max |x| of the signal, 0 when empty.
func Peak(signal []int) int {
	peak := 0
	for _, v := range signal {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []int) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range signal {
		x := float64(v)
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}
