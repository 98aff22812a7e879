// Command audio2anim turns an audio file into keyframed object animation.
//
// Usage:
//
//	audio2anim [flags] <audio-file>
//
// The file is split into a low and a high frequency band, each band is
// reduced to one envelope value per keyframe, and an animation preset maps
// the envelopes onto object transforms across the full audio duration. The
// result is written as a JSON keyframe plan or as a Blender Python script
// that rebuilds the scene, attaches the soundtrack and renders the video.
//
// Every flag can also be set through the environment (AUDIO2ANIM_FPS,
// AUDIO2ANIM_LOW_BAND, ...) or a config file passed with --config.
//
// Examples:
//
//	audio2anim song.wav > plan.json
//	audio2anim -f blender -o scene.py --render song.flac
//	audio2anim --preset dance --objects 5 --low-band 40:250 song.mp3
//	blender --background --python scene.py
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-motion/audio/waveform"
	"github.com/cwbudde/algo-motion/pipeline"
	"github.com/cwbudde/algo-motion/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type closingSink interface {
	scene.Sink
	Close() error
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: audio2anim [flags] <audio-file>\n\n")
		fmt.Fprintf(stderr, "Turns the low and high bands of an audio file into keyframed animation.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	opts, err := loadOptions(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "audio2anim: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	log, err := newLogger(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "audio2anim: %v\n", err)
		return 2
	}

	if err := convert(opts, stdout, log); err != nil {
		fields := logrus.Fields{"error": err.Error()}
		if stage, ok := pipeline.StageOf(err); ok {
			fields["stage"] = stage
		}
		log.WithFields(fields).Error("Run failed")
		fmt.Fprintf(stderr, "audio2anim: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(opts *options, w io.Writer) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if opts.logFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return logger.WithField("run_id", uuid.NewString()), nil
}

func convert(opts *options, stdout io.Writer, log *logrus.Entry) error {
	input, err := filepath.Abs(opts.input)
	if err != nil {
		return err
	}

	p, err := pipeline.New(opts.cfg, pipeline.WithLogger(log))
	if err != nil {
		return err
	}

	res, err := p.Run(input)
	if err != nil {
		return err
	}

	if opts.dumpBands != "" {
		if err := dumpBands(opts.dumpBands, res, log); err != nil {
			return err
		}
	}

	return write(opts, res, stdout, log)
}

// write renders the plan in memory and creates the output only once the
// commit succeeded.
func write(opts *options, res *pipeline.Result, stdout io.Writer, log *logrus.Entry) error {
	var buf bytes.Buffer
	if err := render(opts, res, &buf); err != nil {
		return err
	}

	if opts.output == "-" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"format":    opts.format,
		"output":    opts.output,
		"frame_end": res.Plan.FrameEnd,
		"keyframes": len(res.Plan.Keyframes),
	}).Info("Wrote plan")
	return nil
}

func render(opts *options, res *pipeline.Result, w io.Writer) error {
	var sink closingSink
	switch opts.format {
	case "blender":
		renderPath, err := filepath.Abs(opts.renderOutput)
		if err != nil {
			return err
		}
		sink = scene.NewBlenderScript(w, scene.BlenderOptions{
			FrameRate:  res.Timeline.FrameRate,
			RenderPath: renderPath,
			Render:     opts.render,
		})
	default:
		sink = scene.NewJSONWriter(w, res.Timeline.FrameRate)
	}

	if err := pipeline.Commit(sink, res); err != nil {
		return err
	}
	return sink.Close()
}

func dumpBands(dir string, res *pipeline.Result, log *logrus.Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, b := range res.Bands {
		path := filepath.Join(dir, string(b.Drive.Role)+".wav")
		if err := waveform.WriteWAV(path, b.Samples, res.Waveform.SampleRate, res.Waveform.BitDepth); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"role":             b.Drive.Role,
			"band":             b.Drive.Band.String(),
			"outside_fraction": b.Removed,
			"path":             path,
		}).Info("Wrote band")
	}
	return nil
}
