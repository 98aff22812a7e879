// Package timeline places keyframe indices on an absolute video frame
// range that spans the full audio duration.
//
// Frame 1 is the first playable frame. Keyframe 0 always lands on it, and
// keyframe i > 0 lands on round(i*FrameEnd/KeyframeCount), computed in
// integer arithmetic and clamped to frame 1. When FrameEnd is smaller than
// the keyframe count several keyframes share a frame; the scene side is
// expected to merge them.
package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// ErrInvalidTimeline is returned for non-positive inputs or an empty frame range.
var ErrInvalidTimeline = errors.New("timeline: invalid timeline")

// FirstFrame is the first playable frame of every timeline.
const FirstFrame = 1

// Timeline maps keyframe indices to frames.
type Timeline struct {
	FrameRate     int
	FrameEnd      int
	KeyframeCount int
}

// FrameEndFor returns round(duration*frameRate).
func FrameEndFor(durationSeconds float64, frameRate int) int {
	return int(math.Round(durationSeconds * float64(frameRate)))
}

// New builds a timeline for an audio duration.
func New(durationSeconds float64, frameRate, keyframeCount int) (Timeline, error) {
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return Timeline{}, fmt.Errorf("%w: duration %v", ErrInvalidTimeline, durationSeconds)
	}
	if frameRate <= 0 {
		return Timeline{}, fmt.Errorf("%w: frame rate %d", ErrInvalidTimeline, frameRate)
	}
	if keyframeCount <= 0 {
		return Timeline{}, fmt.Errorf("%w: keyframe count %d", ErrInvalidTimeline, keyframeCount)
	}

	frameEnd := FrameEndFor(durationSeconds, frameRate)
	if frameEnd < FirstFrame {
		return Timeline{}, fmt.Errorf("%w: %.4gs at %d fps has no frames", ErrInvalidTimeline, durationSeconds, frameRate)
	}

	return Timeline{FrameRate: frameRate, FrameEnd: frameEnd, KeyframeCount: keyframeCount}, nil
}

// FrameFor maps keyframe i of count onto a range ending at frameEnd.
// Inputs are assumed valid: 0 <= i < count, count >= 1, frameEnd >= 1.
func FrameFor(i, count, frameEnd int) int {
	if i <= 0 {
		return FirstFrame
	}
	return max(FirstFrame, core.RoundDiv(i*frameEnd, count))
}

// FrameForIndex maps keyframe i onto the timeline.
func (t Timeline) FrameForIndex(i int) int {
	return FrameFor(i, t.KeyframeCount, t.FrameEnd)
}

// Frames returns the frame of every keyframe in index order.
// The sequence is non-decreasing.
func (t Timeline) Frames() []int {
	frames := make([]int, t.KeyframeCount)
	for i := range frames {
		frames[i] = t.FrameForIndex(i)
	}
	return frames
}

// Range returns the playable frame range.
func (t Timeline) Range() (start, end int) {
	return FirstFrame, t.FrameEnd
}

// Seconds returns the time of frame f relative to FirstFrame.
func (t Timeline) Seconds(frame int) float64 {
	return float64(frame-FirstFrame) / float64(t.FrameRate)
}

// Distinct returns the number of distinct frames used by the keyframes.
func (t Timeline) Distinct() int {
	n, last := 0, 0
	for _, f := range t.Frames() {
		if f != last {
			n++
			last = f
		}
	}
	return n
}
