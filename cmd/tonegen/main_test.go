package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-motion/audio/waveform"
	"github.com/cwbudde/algo-motion/dsp/band"
	stats "github.com/cwbudde/algo-motion/stats/time"
)

func TestRunWritesSine(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sine.wav")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{out}, &stdout, &stderr), stderr.String())

	w, err := waveform.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 88200, w.Len())
	assert.Equal(t, 44100, w.SampleRate)
	assert.Equal(t, 16, w.BitDepth)
	assert.InDelta(t, 2.0, w.Duration, 1e-12)

	s := stats.Calculate(w.Samples, w.BitDepth)
	assert.InDelta(t, 16383, s.Peak, 2)
	assert.InDelta(t, 0, s.DC, 1)
}

func TestRunTwoToneSplitsIntoBands(t *testing.T) {
	out := filepath.Join(t.TempDir(), "two.wav")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--freq", "440,6010", "--level", "0.8", "-d", "1", "-b", "24", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	w, err := waveform.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 24, w.BitDepth)

	inside, outside, err := band.EnergySplit(w.Samples, w.SampleRate, band.BandPass(400, 500))
	require.NoError(t, err)
	assert.InDelta(t, 1, inside/outside, 1e-2, "both tones carry equal energy")
}

func TestRunNoiseIsSeeded(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.wav")
	var stdout, stderr bytes.Buffer

	args := []string{"--noise", "0.1", "--seed", "9", "-d", "0.25"}
	require.Equal(t, 0, run(append(args, a), &stdout, &stderr))
	require.Equal(t, 0, run(append(args, b), &stdout, &stderr))

	wa, err := waveform.Load(a)
	require.NoError(t, err)
	wb, err := waveform.Load(b)
	require.NoError(t, err)
	assert.Equal(t, wa.Samples, wb.Samples)
}

func TestRunRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no output", nil, 2},
		{"unknown flag", []string{"--volume", "3", filepath.Join(dir, "x.wav")}, 2},
		{"bad bits", []string{"-b", "12", filepath.Join(dir, "x.wav")}, 1},
		{"bad level", []string{"--level", "1.5", filepath.Join(dir, "x.wav")}, 1},
		{"zero duration", []string{"-d", "0", filepath.Join(dir, "x.wav")}, 1},
		{"bad rate", []string{"-r", "0", filepath.Join(dir, "x.wav")}, 1},
		{"bad band", []string{"--band", "3000:100", filepath.Join(dir, "x.wav")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRunReportsBandSplit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "two.wav")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--freq", "440,6010", "-d", "1", "--band", ":1000", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var (
		name string
		frac float64
	)
	_, err := fmt.Sscanf(stdout.String(), "band %s outside fraction %f", &name, &frac)
	require.NoError(t, err, stdout.String())
	assert.Equal(t, ":1000:", name)
	assert.InDelta(t, 0.5, frac, 1e-3, "equal tones split evenly")
}

func TestRunWithoutBandPrintsNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sine.wav")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"-d", "0.1", out}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}
