package band

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/spectrum"
)

// EnergySplit returns the spectral energy of samples inside and outside b,
// summed over the full two-sided spectrum of one exact-length DFT. The ratio
// outside/(inside+outside) is the fraction of energy a filter with band b
// would remove.
func EnergySplit(samples []int, sampleRate int, b Band) (inside, outside float64, err error) {
	if sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if err := b.Validate(); err != nil {
		return 0, 0, err
	}

	n := len(samples)
	if n == 0 {
		return 0, 0, nil
	}
	if n == 1 {
		e := float64(samples[0]) * float64(samples[0])
		if b.Contains(0, spectrum.Nyquist(float64(sampleRate))) {
			return e, 0, nil
		}
		return 0, e, nil
	}

	fft := fourier.NewFFT(n)
	power := spectrum.Power(fft.Coefficients(nil, core.IntsToFloats(nil, samples)))

	sr := float64(sampleRate)
	nyq := spectrum.Nyquist(sr)
	for k, p := range power {
		// Bins strictly between DC and Nyquist stand for a mirrored pair.
		weight := 2.0
		if k == 0 || 2*k == n {
			weight = 1
		}
		if b.Contains(spectrum.AbsBinFrequency(k, n, sr), nyq) {
			inside += weight * p
		} else {
			outside += weight * p
		}
	}
	return inside, outside, nil
}

// OutsideFraction is outside/(inside+outside) from EnergySplit, or 0 for a
// signal without energy.
func OutsideFraction(samples []int, sampleRate int, b Band) (float64, error) {
	inside, outside, err := EnergySplit(samples, sampleRate, b)
	if err != nil {
		return 0, err
	}
	total := inside + outside
	if total == 0 {
		return 0, nil
	}
	return outside / total, nil
}
