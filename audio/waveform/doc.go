// Package waveform decodes audio files into a single channel of integer
// PCM samples.
//
// WAV (8/16/24/32-bit PCM), FLAC and MP3 are recognised by file
// extension. Multi-channel sources are reduced deterministically: channel
// 0 by default, another channel with [WithChannel], or the truncated
// integer mean of all channels with [WithMixdown]. The rule applied is
// recorded in [Waveform.Reduction].
//
// Every failure is reported as a [*DecodeError] so callers can report the
// offending path, and the file handle is closed on every return path.
package waveform
