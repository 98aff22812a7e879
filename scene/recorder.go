package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-motion/motion/binder"
)

// Key identifies one keyframe slot of a scene.
type Key struct {
	Object  int
	Channel binder.Channel
	Frame   int
}

// Recorder is an in-memory Sink. Keyframes on the same object, channel and
// frame are merged; the last write wins.
type Recorder struct {
	FrameStart, FrameEnd int
	Soundtrack           string
	SoundStart           int

	values   map[Key]binder.KeyframeRequest
	order    []Key
	inserted int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{values: make(map[Key]binder.KeyframeRequest)}
}

func (r *Recorder) SetFrameRange(start, end int) error {
	r.FrameStart, r.FrameEnd = start, end
	return nil
}

func (r *Recorder) SetSoundtrack(path string, startFrame int) error {
	r.Soundtrack, r.SoundStart = path, startFrame
	return nil
}

func (r *Recorder) InsertKeyframe(req binder.KeyframeRequest) error {
	if r.values == nil {
		r.values = make(map[Key]binder.KeyframeRequest)
	}
	k := Key{Object: req.Object.Index, Channel: req.Channel, Frame: req.Frame}
	if _, ok := r.values[k]; !ok {
		r.order = append(r.order, k)
	}
	r.values[k] = req
	r.inserted++
	return nil
}

// Value returns the keyed value at k.
func (r *Recorder) Value(k Key) (mgl64.Vec3, bool) {
	req, ok := r.values[k]
	return req.Value, ok
}

// Keyframes returns the merged keyframes in order of first insertion.
func (r *Recorder) Keyframes() []binder.KeyframeRequest {
	out := make([]binder.KeyframeRequest, len(r.order))
	for i, k := range r.order {
		out[i] = r.values[k]
	}
	return out
}

// Len returns the number of distinct keyframe slots.
func (r *Recorder) Len() int { return len(r.order) }

// Inserted returns the number of InsertKeyframe calls.
func (r *Recorder) Inserted() int { return r.inserted }
