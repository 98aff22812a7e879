package binder

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Input is what a preset sees for one object at one keyframe. Every call
// to Eval gets its own Values map, so a preset may keep it.
type Input struct {
	Object    Object
	Objects   int
	Keyframe  int
	Keyframes int
	Values    map[Role]float64
}

// Value returns the envelope value of role at the current keyframe.
func (in Input) Value(r Role) float64 { return in.Values[r] }

// Progress returns Keyframe/Keyframes in [0, 1).
func (in Input) Progress() float64 {
	return float64(in.Keyframe) / float64(in.Keyframes)
}

// Slot returns Object.Index/Objects in [0, 1).
func (in Input) Slot() float64 {
	return float64(in.Object.Index) / float64(in.Objects)
}

// ChannelValue is one channel of a preset result.
type ChannelValue struct {
	Channel Channel
	Value   mgl64.Vec3
}

// Preset maps envelope values to transforms.
type Preset interface {
	Name() string
	// Roles lists the envelopes Eval reads.
	Roles() []Role
	// Eval returns the channels to key, in emission order.
	Eval(in Input) []ChannelValue
}

// Bounce moves objects vertically with the low band. Objects are spaced
// along x, centred on the origin.
type Bounce struct {
	Height  float64
	Spacing float64
}

// Name returns "bounce".
func (Bounce) Name() string { return "bounce" }

// Roles returns the low band.
func (Bounce) Roles() []Role { return []Role{RoleLow} }

// Eval keys the location of in.Object.
func (p Bounce) Eval(in Input) []ChannelValue {
	x := p.Spacing * (float64(in.Object.Index) - float64(in.Objects-1)/2)
	return []ChannelValue{{
		Channel: ChannelLocation,
		Value:   mgl64.Vec3{x, 0, p.Height * in.Value(RoleLow)},
	}}
}

// Orbit circles objects around the origin. Each object starts at an
// azimuth offset of 2*pi*index/objects and advances Turns revolutions over
// the timeline; the low band lifts it.
type Orbit struct {
	Radius float64
	Height float64
	Turns  float64
}

// Name returns "orbit".
func (Orbit) Name() string { return "orbit" }

// Roles returns the low band.
func (Orbit) Roles() []Role { return []Role{RoleLow} }

// Eval keys the location of in.Object on its circle.
func (p Orbit) Eval(in Input) []ChannelValue {
	return []ChannelValue{{Channel: ChannelLocation, Value: p.location(in)}}
}

func (p Orbit) location(in Input) mgl64.Vec3 {
	theta := 2 * math.Pi * (in.Slot() + p.Turns*in.Progress())
	return mgl64.Vec3{
		p.Radius * math.Cos(theta),
		p.Radius * math.Sin(theta),
		p.Height * in.Value(RoleLow),
	}
}

// Tumble rotates objects in place: x follows the high band, z the low band.
// Odd objects spin the other way around z.
type Tumble struct {
	Angle float64 // radians at envelope value 1
}

// Name returns "tumble".
func (Tumble) Name() string { return "tumble" }

// Roles returns the low and high bands.
func (Tumble) Roles() []Role { return []Role{RoleLow, RoleHigh} }

// Eval keys the rotation of in.Object.
func (p Tumble) Eval(in Input) []ChannelValue {
	return []ChannelValue{{Channel: ChannelRotation, Value: p.rotation(in)}}
}

func (p Tumble) rotation(in Input) mgl64.Vec3 {
	dir := 1.0
	if in.Object.Index%2 == 1 {
		dir = -1
	}
	return mgl64.Vec3{
		p.Angle * in.Value(RoleHigh),
		0,
		dir * p.Angle * in.Value(RoleLow),
	}
}

// Dance combines Orbit and Tumble.
type Dance struct {
	Orbit  Orbit
	Tumble Tumble
}

// Name returns "dance".
func (Dance) Name() string { return "dance" }

// Roles returns the low and high bands.
func (Dance) Roles() []Role { return []Role{RoleLow, RoleHigh} }

// Eval keys location first, then rotation.
func (p Dance) Eval(in Input) []ChannelValue {
	return []ChannelValue{
		{Channel: ChannelLocation, Value: p.Orbit.location(in)},
		{Channel: ChannelRotation, Value: p.Tumble.rotation(in)},
	}
}

// Default presets by name.
var presets = map[string]Preset{
	"bounce": Bounce{Height: 1, Spacing: 3},
	"orbit":  Orbit{Radius: 4, Height: 1, Turns: 1},
	"tumble": Tumble{Angle: math.Pi / 2},
	"dance":  Dance{Orbit: Orbit{Radius: 4, Height: 1, Turns: 1}, Tumble: Tumble{Angle: math.Pi / 4}},
}

// PresetByName returns a default-configured preset.
func PresetByName(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
