package scene

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-gl/mathgl/mgl64"
)

// BlenderOptions configures the generated script.
type BlenderOptions struct {
	FrameRate int
	// RenderPath is the video file written by the render step.
	RenderPath string
	// Render appends bpy.ops.render.render(animation=True).
	Render bool
}

// BlenderScript buffers a plan and renders a bpy script on Close. The
// script clears the scene, adds one cube per object, keys every request,
// places the camera, attaches the soundtrack and configures an
// H.264/AAC render.
type BlenderScript struct {
	planBuffer
	w    io.Writer
	opts BlenderOptions
}

// NewBlenderScript returns a BlenderScript writing to w.
func NewBlenderScript(w io.Writer, opts BlenderOptions) *BlenderScript {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 24
	}
	if opts.RenderPath == "" {
		opts.RenderPath = "animation.mp4"
	}
	return &BlenderScript{w: w, opts: opts}
}

// palette cycles per object index; the first cube is red.
var palette = [][4]float64{
	{1, 0, 0, 1},
	{0, 0.6, 1, 1},
	{0.1, 0.8, 0.2, 1},
	{1, 0.8, 0, 1},
	{0.8, 0.2, 0.9, 1},
	{0, 0.9, 0.9, 1},
}

type blenderObject struct {
	Name  string
	Color [4]float64
}

type blenderKey struct {
	Object   string
	DataPath string
	Frame    int
	Value    mgl64.Vec3
}

type blenderData struct {
	FrameStart int
	FrameEnd   int
	FrameRate  int
	Soundtrack string
	SoundStart int
	RenderPath string
	Render     bool
	Objects    []blenderObject
	Keys       []blenderKey
}

// Close renders the script.
func (b *BlenderScript) Close() error {
	p := b.collected()
	data := blenderData{
		FrameStart: p.FrameStart,
		FrameEnd:   p.FrameEnd,
		FrameRate:  b.opts.FrameRate,
		Soundtrack: p.Soundtrack,
		SoundStart: p.SoundStart,
		RenderPath: b.opts.RenderPath,
		Render:     b.opts.Render,
	}

	for _, obj := range p.Objects {
		data.Objects = append(data.Objects, blenderObject{
			Name:  obj.Name,
			Color: palette[obj.Index%len(palette)],
		})
	}
	for _, k := range p.Keyframes {
		data.Keys = append(data.Keys, blenderKey{
			Object:   k.Object.Name,
			DataPath: k.Channel.DataPath(),
			Frame:    k.Frame,
			Value:    k.Value,
		})
	}

	if err := blenderTemplate.Execute(b.w, data); err != nil {
		return fmt.Errorf("scene: render Blender script: %w", err)
	}
	return nil
}

func pyString(s string) string {
	return strconv.Quote(s)
}

func pyFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func pyTuple(xs ...float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = pyFloat(x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var blenderTemplate = template.Must(template.New("blender").Funcs(template.FuncMap{
	"py":   pyString,
	"vec":  func(v mgl64.Vec3) string { return pyTuple(v[:]...) },
	"rgba": func(c [4]float64) string { return pyTuple(c[:]...) },
}).Parse(blenderScript))

const blenderScript = `# Generated by audio2anim.
# Run with: blender --background --python <this file>
import bpy

scene = bpy.context.scene

bpy.ops.object.select_all(action='SELECT')
bpy.ops.object.delete()

objects = {}
{{- range .Objects}}

bpy.ops.mesh.primitive_cube_add(size=2, location=(0, 0, 0))
obj = bpy.context.object
obj.name = {{py .Name}}
material = bpy.data.materials.new(name={{py .Name}} + "Material")
material.diffuse_color = {{rgba .Color}}
obj.data.materials.append(material)
objects[{{py .Name}}] = obj
{{- end}}

keyframes = [
{{- range .Keys}}
    ({{py .Object}}, {{py .DataPath}}, {{.Frame}}, {{vec .Value}}),
{{- end}}
]

for name, path, frame, value in keyframes:
    obj = objects[name]
    setattr(obj, path, value)
    obj.keyframe_insert(data_path=path, frame=frame)

scene.frame_start = {{.FrameStart}}
scene.frame_end = {{.FrameEnd}}
scene.render.fps = {{.FrameRate}}

bpy.ops.object.camera_add(location=(7, -7, 5))
camera = bpy.context.object
camera.rotation_euler = (1.2, 0, 0.8)
scene.camera = camera
{{- if .Soundtrack}}

scene.sequence_editor_create()
scene.sequence_editor.sequences.new_sound(
    name="Background Sound",
    filepath={{py .Soundtrack}},
    channel=1,
    frame_start={{.SoundStart}},
)
{{- end}}

scene.render.image_settings.file_format = 'FFMPEG'
scene.render.filepath = {{py .RenderPath}}
scene.render.ffmpeg.format = 'MPEG4'
scene.render.ffmpeg.codec = 'H264'
scene.render.ffmpeg.audio_codec = 'AAC'
scene.render.ffmpeg.audio_bitrate = 192
scene.render.ffmpeg.audio_mixrate = 44100
scene.render.ffmpeg.audio_channels = 'MONO'
{{- if .Render}}

bpy.ops.render.render(animation=True)
{{- end}}
`
