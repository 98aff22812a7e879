package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-motion/dsp/band"
	"github.com/cwbudde/algo-motion/motion/binder"
	"github.com/cwbudde/algo-motion/motion/envelope"
	"github.com/cwbudde/algo-motion/pipeline"
)

const envPrefix = "AUDIO2ANIM"

var errUsage = errors.New("usage")

// options is the resolved command line: flags, then environment, then the
// optional config file, then defaults.
type options struct {
	input string

	cfg pipeline.Config

	format       string
	output       string
	renderOutput string
	render       bool
	dumpBands    string

	logLevel  string
	logFormat string
}

func newFlagSet() *pflag.FlagSet {
	def := pipeline.DefaultConfig()

	fs := pflag.NewFlagSet("audio2anim", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.String("config", "", "YAML/TOML/JSON config file")
	fs.Int("fps", def.FrameRate, "video frame rate")
	fs.Int("keyframes", def.Keyframes, "keyframes per object")
	fs.String("low-band", band.LowPass(pipeline.DefaultLowEdge).String(), "low drive band as low:high in Hz")
	fs.String("high-band", band.HighPass(pipeline.DefaultHighEdge).String(), "high drive band as low:high in Hz")
	fs.String("low-mode", envelope.ModeCentered.String(), "low envelope mode (peak|centered)")
	fs.String("high-mode", envelope.ModePeak.String(), "high envelope mode (peak|centered)")
	fs.String("preset", def.Preset, "animation preset ("+strings.Join(binder.PresetNames(), "|")+")")
	fs.Int("objects", def.Objects, "number of animated objects")
	fs.String("object-name", def.ObjectName, "base object name")
	fs.Int("channel", 0, "source channel to animate from")
	fs.Bool("mixdown", false, "average all source channels instead of picking one")
	fs.Bool("parallel", false, "filter bands concurrently")
	fs.String("backend", band.BackendAuto.String(), "FFT backend (auto|algo-fft|gonum)")
	fs.Float64("gain", def.Gain, "centring gain of centered envelopes")
	fs.Int("silence-floor", def.SilenceFloor, "largest sample magnitude treated as silence")
	fs.StringP("format", "f", "json", "output format (json|blender)")
	fs.StringP("output", "o", "-", "output file, - for stdout")
	fs.String("render-output", "animation.mp4", "video path written by the Blender script")
	fs.Bool("render", false, "make the Blender script render the animation")
	fs.String("dump-bands", "", "directory to write filtered bands as WAV files")
	fs.String("log-level", "info", "log level (debug|info|warn|error)")
	fs.String("log-format", "text", "log format (text|json)")

	return fs
}

func loadOptions(fs *pflag.FlagSet, args []string) (*options, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected one audio file, got %d arguments", errUsage, fs.NArg())
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return resolve(v, fs.Arg(0))
}

func resolve(v *viper.Viper, input string) (*options, error) {
	low, err := drive(v, binder.RoleLow)
	if err != nil {
		return nil, err
	}
	high, err := drive(v, binder.RoleHigh)
	if err != nil {
		return nil, err
	}
	backend, err := band.ParseBackend(v.GetString("backend"))
	if err != nil {
		return nil, err
	}

	cfg := pipeline.DefaultConfig()
	cfg.FrameRate = v.GetInt("fps")
	cfg.Keyframes = v.GetInt("keyframes")
	cfg.Drives = []pipeline.Drive{low, high}
	cfg.Preset = v.GetString("preset")
	cfg.Objects = v.GetInt("objects")
	cfg.ObjectName = v.GetString("object-name")
	cfg.Channel = v.GetInt("channel")
	cfg.Mixdown = v.GetBool("mixdown")
	cfg.Parallel = v.GetBool("parallel")
	cfg.Backend = backend
	cfg.Gain = v.GetFloat64("gain")
	cfg.SilenceFloor = v.GetInt("silence-floor")

	o := &options{
		input:        input,
		cfg:          cfg,
		format:       strings.ToLower(v.GetString("format")),
		output:       v.GetString("output"),
		renderOutput: v.GetString("render-output"),
		render:       v.GetBool("render"),
		dumpBands:    v.GetString("dump-bands"),
		logLevel:     v.GetString("log-level"),
		logFormat:    strings.ToLower(v.GetString("log-format")),
	}

	switch o.format {
	case "json", "blender":
	default:
		return nil, fmt.Errorf("unknown format %q (json|blender)", o.format)
	}
	switch o.logFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q (text|json)", o.logFormat)
	}

	return o, nil
}

func drive(v *viper.Viper, role binder.Role) (pipeline.Drive, error) {
	key := string(role)
	b, err := band.Parse(v.GetString(key + "-band"))
	if err != nil {
		return pipeline.Drive{}, fmt.Errorf("--%s-band: %w", key, err)
	}
	mode, err := envelope.ParseMode(v.GetString(key + "-mode"))
	if err != nil {
		return pipeline.Drive{}, fmt.Errorf("--%s-mode: %w", key, err)
	}
	return pipeline.Drive{Role: role, Band: b, Mode: mode}, nil
}
