package pipeline

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-motion/audio/waveform"
	"github.com/cwbudde/algo-motion/dsp/band"
	"github.com/cwbudde/algo-motion/motion/binder"
	"github.com/cwbudde/algo-motion/motion/envelope"
	"github.com/cwbudde/algo-motion/motion/timeline"
	"github.com/cwbudde/algo-motion/scene"
	stats "github.com/cwbudde/algo-motion/stats/time"
)

// Pipeline is a validated, reusable run configuration.
type Pipeline struct {
	cfg    Config
	preset binder.Preset
	log    logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the stage logger. Default logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPreset overrides Config.Preset with a custom preset.
func WithPreset(preset binder.Preset) Option {
	return func(p *Pipeline) {
		if preset != nil {
			p.preset = preset
		}
	}
}

// New validates cfg and returns a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg, log: logrus.StandardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.preset == nil {
		preset, err := binder.PresetByName(cfg.Preset)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		p.preset = preset
	}
	for _, role := range p.preset.Roles() {
		if _, ok := cfg.Drive(role); !ok {
			return nil, fmt.Errorf("%w: preset %s needs a %q drive", ErrInvalidConfig, p.preset.Name(), role)
		}
	}

	return p, nil
}

// Config returns the run configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Preset returns the preset used for binding.
func (p *Pipeline) Preset() binder.Preset { return p.preset }

// BandResult is the outcome of one drive. Removed is the fraction of the
// input energy that lies outside the drive's band.
type BandResult struct {
	Drive    Drive
	Samples  []int
	Stats    stats.Stats
	Removed  float64
	Envelope envelope.Envelope
	Silent   bool
}

// Result is the buffered output of a successful run. Silent lists the
// roles whose envelope fell back to zeros.
type Result struct {
	Waveform *waveform.Waveform
	Timeline timeline.Timeline
	Bands    []BandResult
	Signals  binder.Signals
	Silent   []binder.Role
	Plan     scene.Plan
}

// Band returns the result of role.
func (r *Result) Band(role binder.Role) (BandResult, bool) {
	for _, b := range r.Bands {
		if b.Drive.Role == role {
			return b, true
		}
	}
	return BandResult{}, false
}

func (p *Pipeline) waveformOptions() []waveform.Option {
	if p.cfg.Mixdown {
		return []waveform.Option{waveform.WithMixdown()}
	}
	return []waveform.Option{waveform.WithChannel(p.cfg.Channel)}
}

// Run processes the audio file at path.
func (p *Pipeline) Run(path string) (*Result, error) {
	log := p.log.WithField("path", path)

	w, err := waveform.Load(path, p.waveformOptions()...)
	if err != nil {
		return nil, &StageError{Stage: StageDecode, Err: err}
	}

	log.WithFields(logrus.Fields{
		"stage":       StageDecode,
		"sample_rate": w.SampleRate,
		"bit_depth":   w.BitDepth,
		"channels":    w.Channels,
		"reduction":   w.Reduction.String(),
		"samples":     w.Len(),
		"duration":    w.Duration,
	}).Info("Decoded waveform")

	return p.RunWaveform(w)
}

// RunWaveform processes an already decoded waveform. w is only read.
func (p *Pipeline) RunWaveform(w *waveform.Waveform) (*Result, error) {
	log := p.log.WithField("path", w.Path)

	bands, err := p.filter(w)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Waveform: w,
		Bands:    bands,
		Signals:  make(binder.Signals, len(bands)),
	}

	for i := range res.Bands {
		b := &res.Bands[i]
		env, err := envelope.Sample(b.Samples, p.cfg.Keyframes, b.Drive.Mode,
			envelope.WithGain(p.cfg.Gain),
			envelope.WithBitDepth(w.BitDepth),
			envelope.WithSilenceFloor(p.cfg.SilenceFloor),
		)
		fields := logrus.Fields{
			"stage": StageEnvelope,
			"role":  b.Drive.Role,
			"mode":  b.Drive.Mode.String(),
		}
		switch {
		case errors.Is(err, envelope.ErrSilentSignal):
			b.Silent = true
			res.Silent = append(res.Silent, b.Drive.Role)
			log.WithFields(fields).Warn("Silent band, using zero envelope")
		case err != nil:
			return nil, &StageError{Stage: StageEnvelope, Role: b.Drive.Role, Err: err}
		default:
			log.WithFields(fields).Debug("Sampled envelope")
		}
		b.Envelope = env
		res.Signals[b.Drive.Role] = env
	}

	tl, err := timeline.New(w.Duration, p.cfg.FrameRate, p.cfg.Keyframes)
	if err != nil {
		return nil, &StageError{Stage: StageTimeline, Err: err}
	}
	res.Timeline = tl

	log.WithFields(logrus.Fields{
		"stage":     StageTimeline,
		"frame_end": tl.FrameEnd,
		"keyframes": tl.KeyframeCount,
		"frames":    tl.Distinct(),
	}).Info("Placed keyframes")

	objects := binder.NewObjects(p.cfg.Objects, p.cfg.ObjectName)
	reqs, err := binder.Bind(objects, res.Signals, tl, p.preset)
	if err != nil {
		return nil, &StageError{Stage: StageBind, Err: err}
	}

	start, end := tl.Range()
	res.Plan = scene.Plan{
		FrameStart: start,
		FrameEnd:   end,
		FrameRate:  tl.FrameRate,
		Soundtrack: w.Path,
		SoundStart: timeline.FirstFrame,
		Objects:    objects,
		Keyframes:  reqs,
	}

	log.WithFields(logrus.Fields{
		"stage":    StageBind,
		"preset":   p.preset.Name(),
		"objects":  len(objects),
		"requests": len(reqs),
	}).Info("Bound keyframes")

	return res, nil
}

func (p *Pipeline) filter(w *waveform.Waveform) ([]BandResult, error) {
	out := make([]BandResult, len(p.cfg.Drives))

	run := func(i int) error {
		d := p.cfg.Drives[i]
		f, err := band.New(w.SampleRate, d.Band, band.WithBitDepth(w.BitDepth), band.WithBackend(p.cfg.Backend))
		if err != nil {
			return &StageError{Stage: StageFilter, Role: d.Role, Err: err}
		}
		samples, err := f.Apply(w.Samples)
		if err != nil {
			return &StageError{Stage: StageFilter, Role: d.Role, Err: err}
		}

		removed, err := band.OutsideFraction(w.Samples, w.SampleRate, d.Band)
		if err != nil {
			return &StageError{Stage: StageFilter, Role: d.Role, Err: err}
		}

		st := stats.Calculate(samples, w.BitDepth)
		out[i] = BandResult{Drive: d, Samples: samples, Stats: st, Removed: removed}

		p.log.WithFields(logrus.Fields{
			"stage":            StageFilter,
			"role":             d.Role,
			"band":             d.Band.String(),
			"peak":             st.Peak,
			"rms_dbfs":         st.RMSdBFS,
			"outside_fraction": removed,
			"parallel":         p.cfg.Parallel,
		}).Debug("Filtered band")
		return nil
	}

	if !p.cfg.Parallel {
		for i := range out {
			if err := run(i); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	var g errgroup.Group
	for i := range out {
		g.Go(func() error { return run(i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Commit forwards a successful result to sink.
func Commit(sink scene.Sink, res *Result) error {
	if res == nil {
		return ErrNoResult
	}
	return scene.Apply(sink, res.Plan)
}
