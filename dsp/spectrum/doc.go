// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package does not implement an FFT itself. It operates on complex
// spectrum bins produced by external FFT backends and provides the bin to
// frequency mapping shared by the band filter and its energy measurements.
package spectrum
