package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/band"
	"github.com/cwbudde/algo-motion/motion/binder"
	"github.com/cwbudde/algo-motion/motion/envelope"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Drive produces the envelope of one role: filter to Band, sample in Mode.
type Drive struct {
	Role binder.Role
	Band band.Band
	Mode envelope.Mode
}

// Config holds everything a run needs besides the input path.
type Config struct {
	FrameRate int
	Keyframes int
	Drives    []Drive

	Preset     string
	Objects    int
	ObjectName string

	// Channel selects the source channel unless Mixdown is set.
	Channel int
	Mixdown bool

	// Parallel filters the drive bands concurrently.
	Parallel bool
	Backend  band.Backend

	Gain         float64
	SilenceFloor int
}

// Default values.
const (
	DefaultFrameRate = 24
	DefaultKeyframes = 50
	DefaultLowEdge   = 1000.0
	DefaultHighEdge  = 4000.0
)

// DefaultConfig returns the low/high band setup driving a single bouncing cube.
func DefaultConfig() Config {
	return Config{
		FrameRate: DefaultFrameRate,
		Keyframes: DefaultKeyframes,
		Drives: []Drive{
			{Role: binder.RoleLow, Band: band.LowPass(DefaultLowEdge), Mode: envelope.ModeCentered},
			{Role: binder.RoleHigh, Band: band.HighPass(DefaultHighEdge), Mode: envelope.ModePeak},
		},
		Preset:       "bounce",
		Objects:      1,
		ObjectName:   "Cube",
		Gain:         1,
		SilenceFloor: 1,
	}
}

// Drive returns the drive for role.
func (c Config) Drive(role binder.Role) (Drive, bool) {
	for _, d := range c.Drives {
		if d.Role == role {
			return d, true
		}
	}
	return Drive{}, false
}

// Validate checks the configuration. Band errors wrap band.ErrInvalidBand.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate %d", ErrInvalidConfig, c.FrameRate)
	}
	if c.Keyframes <= 0 {
		return fmt.Errorf("%w: keyframe count %d", ErrInvalidConfig, c.Keyframes)
	}
	if c.Objects <= 0 {
		return fmt.Errorf("%w: object count %d", ErrInvalidConfig, c.Objects)
	}
	if !c.Mixdown && c.Channel < 0 {
		return fmt.Errorf("%w: channel %d", ErrInvalidConfig, c.Channel)
	}
	if len(c.Drives) == 0 {
		return fmt.Errorf("%w: no drives", ErrInvalidConfig)
	}

	seen := make(map[binder.Role]bool, len(c.Drives))
	for _, d := range c.Drives {
		if seen[d.Role] {
			return fmt.Errorf("%w: duplicate drive %q", ErrInvalidConfig, d.Role)
		}
		seen[d.Role] = true

		if err := d.Band.Validate(); err != nil {
			return fmt.Errorf("pipeline: drive %q: %w", d.Role, err)
		}
	}
	return nil
}
