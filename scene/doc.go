// Package scene applies keyframe plans to scene-graph collaborators.
//
// A [Plan] is the complete output of one run. [Apply] validates it and
// forwards it to a [Sink] in a fixed order: frame range, soundtrack, then
// every keyframe. Three sinks are provided: [Recorder] keeps the merged
// scene state in memory, [JSONWriter] writes the plan as JSON, and
// [BlenderScript] renders a Python script that rebuilds and renders the
// scene in Blender.
package scene
