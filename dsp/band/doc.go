// Package band isolates a frequency band of an integer PCM signal with a
// brick-wall spectral filter.
//
// The whole signal is transformed in one DFT of its exact length, every bin
// whose absolute frequency lies outside the band is zeroed, and the inverse
// transform is rounded back to saturated integer samples:
//
//	samples, err := band.Apply(pcm, 44100, band.LowPass(1000))
//
// A [Band] carries two optional edges. Both absent is a pass-through and
// returns a copy of the input without a transform round trip. A bin is kept
// only when low <= |f| <= high holds for its folded frequency f.
//
// Power-of-two lengths are transformed with an algo-fft complex plan, all
// other lengths with gonum's mixed-radix real FFT, so the bin grid is always
// k*sampleRate/N for the true signal length N.
package band
