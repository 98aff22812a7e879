package binder

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-motion/motion/envelope"
	"github.com/cwbudde/algo-motion/motion/timeline"
)

// Errors returned by Bind and PresetByName.
var (
	ErrMissingSignal  = errors.New("binder: missing signal")
	ErrLengthMismatch = errors.New("binder: envelope length mismatch")
	ErrNoObjects      = errors.New("binder: no objects")
	ErrUnknownPreset  = errors.New("binder: unknown preset")
)

// Role names the envelope a preset reads.
type Role string

const (
	RoleLow  Role = "low"
	RoleHigh Role = "high"
)

// Signals holds one envelope per role.
type Signals map[Role]envelope.Envelope

// Channel is an animated transform property.
type Channel int

const (
	ChannelLocation Channel = iota
	ChannelRotation
)

// String returns "location" or "rotation".
func (c Channel) String() string {
	switch c {
	case ChannelLocation:
		return "location"
	case ChannelRotation:
		return "rotation"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// DataPath returns the Blender property path of the channel.
func (c Channel) DataPath() string {
	if c == ChannelRotation {
		return "rotation_euler"
	}
	return "location"
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "location":
		*c = ChannelLocation
	case "rotation":
		*c = ChannelRotation
	default:
		return fmt.Errorf("binder: unknown channel %q", text)
	}
	return nil
}

// Object is an opaque handle to a scene entity. Only Index is used for
// binding; Name is carried for the scene adapters.
type Object struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewObjects returns n objects named like Blender duplicates:
// Cube, Cube.001, Cube.002, ...
func NewObjects(n int, base string) []Object {
	objs := make([]Object, n)
	for i := range objs {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s.%03d", base, i)
		}
		objs[i] = Object{Index: i, Name: name}
	}
	return objs
}

// KeyframeRequest asks the scene to key one channel of one object.
type KeyframeRequest struct {
	Object  Object     `json:"object"`
	Frame   int        `json:"frame"`
	Channel Channel    `json:"channel"`
	Value   mgl64.Vec3 `json:"value"`
}

// Bind evaluates the preset for every object and keyframe.
func Bind(objects []Object, signals Signals, tl timeline.Timeline, preset Preset) ([]KeyframeRequest, error) {
	if preset == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnknownPreset)
	}
	if len(objects) == 0 {
		return nil, ErrNoObjects
	}

	roles := preset.Roles()
	for _, role := range roles {
		env, ok := signals[role]
		if !ok {
			return nil, fmt.Errorf("%w: preset %s needs %q", ErrMissingSignal, preset.Name(), role)
		}
		if env.Len() != tl.KeyframeCount {
			return nil, fmt.Errorf("%w: %q has %d values, timeline %d keyframes",
				ErrLengthMismatch, role, env.Len(), tl.KeyframeCount)
		}
	}

	var out []KeyframeRequest
	for _, obj := range objects {
		for k := 0; k < tl.KeyframeCount; k++ {
			in := Input{
				Object:    obj,
				Objects:   len(objects),
				Keyframe:  k,
				Keyframes: tl.KeyframeCount,
				Values:    make(map[Role]float64, len(roles)),
			}
			for _, role := range roles {
				in.Values[role] = signals[role].At(k)
			}

			frame := tl.FrameForIndex(k)
			for _, cv := range preset.Eval(in) {
				out = append(out, KeyframeRequest{
					Object:  obj,
					Frame:   frame,
					Channel: cv.Channel,
					Value:   cv.Value,
				})
			}
		}
	}

	return out, nil
}
