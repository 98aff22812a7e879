package scene

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cwbudde/algo-motion/motion/binder"
	"github.com/cwbudde/algo-motion/motion/timeline"
)

// JSONWriter buffers a plan and writes it as indented JSON on Close.
type JSONWriter struct {
	planBuffer
	w         io.Writer
	frameRate int
}

type jsonKeyframe struct {
	binder.KeyframeRequest
	Time *float64 `json:"time,omitempty"`
}

type jsonPlan struct {
	Plan
	Keyframes []jsonKeyframe `json:"keyframes"`
}

// NewJSONWriter returns a JSONWriter writing to w. frameRate is recorded
// in the document and gives every keyframe its time in seconds from the
// first frame; 0 omits both.
func NewJSONWriter(w io.Writer, frameRate int) *JSONWriter {
	return &JSONWriter{w: w, frameRate: frameRate}
}

// Close writes the document.
func (j *JSONWriter) Close() error {
	p := j.collected()
	p.FrameRate = j.frameRate

	doc := jsonPlan{Plan: p, Keyframes: make([]jsonKeyframe, len(p.Keyframes))}
	tl := timeline.Timeline{FrameRate: j.frameRate, FrameEnd: p.FrameEnd}
	for i, k := range p.Keyframes {
		doc.Keyframes[i].KeyframeRequest = k
		if j.frameRate > 0 {
			sec := tl.Seconds(k.Frame)
			doc.Keyframes[i].Time = &sec
		}
	}

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("scene: write JSON plan: %w", err)
	}
	return nil
}
