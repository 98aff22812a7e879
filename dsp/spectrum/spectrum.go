package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2
}

// BinFrequency returns the signed frequency of bin k of an n-point DFT at
// sampleRate: k*sampleRate/n folded into [-sampleRate/2, sampleRate/2).
//
// For even n the Nyquist bin k = n/2 maps to -sampleRate/2. k outside
// [0, n) is reduced modulo n.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	k %= n
	if k < 0 {
		k += n
	}
	if 2*k >= n {
		k -= n
	}
	return float64(k) * sampleRate / float64(n)
}

// AbsBinFrequency returns |BinFrequency(k, n, sampleRate)|.
func AbsBinFrequency(k, n int, sampleRate float64) float64 {
	f := BinFrequency(k, n, sampleRate)
	if f < 0 {
		return -f
	}
	return f
}

