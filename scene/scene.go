package scene

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-motion/motion/binder"
)

// ErrInvalidPlan is returned by Plan.Validate.
var ErrInvalidPlan = errors.New("scene: invalid plan")

// Sink receives scene mutations.
type Sink interface {
	SetFrameRange(start, end int) error
	SetSoundtrack(path string, startFrame int) error
	InsertKeyframe(req binder.KeyframeRequest) error
}

// Plan is a complete, ordered set of scene mutations.
type Plan struct {
	FrameStart int                      `json:"frame_start"`
	FrameEnd   int                      `json:"frame_end"`
	FrameRate  int                      `json:"frame_rate,omitempty"`
	Soundtrack string                   `json:"soundtrack,omitempty"`
	SoundStart int                      `json:"sound_start,omitempty"`
	Objects    []binder.Object          `json:"objects"`
	Keyframes  []binder.KeyframeRequest `json:"keyframes"`
}

// Validate checks the frame range and that every keyframe lies inside it.
func (p Plan) Validate() error {
	if p.FrameStart < 1 || p.FrameEnd < p.FrameStart {
		return fmt.Errorf("%w: frame range [%d, %d]", ErrInvalidPlan, p.FrameStart, p.FrameEnd)
	}
	if p.Soundtrack != "" && p.SoundStart < 1 {
		return fmt.Errorf("%w: soundtrack start frame %d", ErrInvalidPlan, p.SoundStart)
	}
	for i, k := range p.Keyframes {
		if k.Frame < p.FrameStart || k.Frame > p.FrameEnd {
			return fmt.Errorf("%w: keyframe %d at frame %d outside [%d, %d]",
				ErrInvalidPlan, i, k.Frame, p.FrameStart, p.FrameEnd)
		}
	}
	return nil
}

// Apply validates p and forwards it to sink. Nothing is forwarded for an
// invalid plan.
func Apply(sink Sink, p Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := sink.SetFrameRange(p.FrameStart, p.FrameEnd); err != nil {
		return fmt.Errorf("scene: set frame range: %w", err)
	}
	if p.Soundtrack != "" {
		if err := sink.SetSoundtrack(p.Soundtrack, p.SoundStart); err != nil {
			return fmt.Errorf("scene: set soundtrack: %w", err)
		}
	}
	for i, k := range p.Keyframes {
		if err := sink.InsertKeyframe(k); err != nil {
			return fmt.Errorf("scene: keyframe %d: %w", i, err)
		}
	}
	return nil
}

// ObjectsOf returns the distinct objects of reqs in order of first use.
func ObjectsOf(reqs []binder.KeyframeRequest) []binder.Object {
	seen := make(map[int]bool)
	var objs []binder.Object
	for _, r := range reqs {
		if !seen[r.Object.Index] {
			seen[r.Object.Index] = true
			objs = append(objs, r.Object)
		}
	}
	return objs
}

// planBuffer is a Sink that collects calls into a Plan.
type planBuffer struct {
	plan Plan
}

func (b *planBuffer) SetFrameRange(start, end int) error {
	b.plan.FrameStart, b.plan.FrameEnd = start, end
	return nil
}

func (b *planBuffer) SetSoundtrack(path string, startFrame int) error {
	b.plan.Soundtrack, b.plan.SoundStart = path, startFrame
	return nil
}

func (b *planBuffer) InsertKeyframe(req binder.KeyframeRequest) error {
	b.plan.Keyframes = append(b.plan.Keyframes, req)
	return nil
}

func (b *planBuffer) collected() Plan {
	p := b.plan
	p.Objects = ObjectsOf(p.Keyframes)
	if p.Keyframes == nil {
		p.Keyframes = []binder.KeyframeRequest{}
	}
	if p.Objects == nil {
		p.Objects = []binder.Object{}
	}
	return p
}
